package renamer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Expand resolves CLI arguments into a flat file list, preserving argument
// order. An argument may be a literal path, a glob pattern, or a directory
// (walked recursively for JPEG files, dotfiles skipped).
func Expand(args []string) ([]string, error) {
	files := []string{}

	for _, a := range args {
		if fi, err := os.Stat(a); err == nil && fi.IsDir() {
			found, err := findImages(a)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}

		if strings.ContainsAny(a, "*?[") {
			ms, err := filepath.Glob(a)
			if err != nil {
				return nil, err
			}
			if len(ms) == 0 {
				klog.Warningf("pattern %q matched no files", a)
			}
			files = append(files, ms...)
			continue
		}

		files = append(files, a)
	}

	return files, nil
}

func findImages(root string) ([]string, error) {
	found := []string{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}

			if !de.IsDir() && isJPEG(path) {
				klog.V(1).Infof("found %s", path)
				found = append(found, path)
			}

			return nil
		},
	})

	return found, err
}

func isJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg"
}
