package renamer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.jpeg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden.jpg"))
	touch(t, filepath.Join(dir, ".cache", "c.jpg"))
	touch(t, filepath.Join(dir, "sub", "d.JPG"))

	got, err := Expand([]string{dir})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.jpeg"),
		filepath.Join(dir, "sub", "d.JPG"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(dir) = %v, want %v", got, want)
	}
}

func TestExpandGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "c.png"))

	got, err := Expand([]string{filepath.Join(dir, "*.jpg")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.jpg"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(glob) = %v, want %v", got, want)
	}
}

func TestExpandLiteralAndOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "z.jpg"))
	touch(t, filepath.Join(dir, "a.jpg"))

	args := []string{
		filepath.Join(dir, "z.jpg"),
		filepath.Join(dir, "a.jpg"),
		"does-not-exist.jpg",
	}
	got, err := Expand(args)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	// literal arguments pass through untouched, in argument order
	if !reflect.DeepEqual(got, args) {
		t.Errorf("Expand(literals) = %v, want %v", got, args)
	}
}
