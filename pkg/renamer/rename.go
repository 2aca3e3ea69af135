package renamer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

var renamedTime = "2006-01-02T15:04:05Z07:00"

// renameInto copies the photo to outDir under
// "<station>_<capture time, UTC>.jpg". The original file is left untouched.
// Two photos at the same station in the same second produce the same name;
// the later copy overwrites the earlier one.
func renameInto(outDir string, s *Station, p Photo) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", outDir, err)
	}

	name := fmt.Sprintf("%s_%s.jpg", s.Name, p.Taken.UTC().Format(renamedTime))
	dst := filepath.Join(outDir, name)

	if err := copy.Copy(p.InPath, dst); err != nil {
		return "", fmt.Errorf("copy %s: %w", p.InPath, err)
	}
	return dst, nil
}
