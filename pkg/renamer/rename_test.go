package renamer

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePhoto(t *testing.T, dir, name string, content []byte) Photo {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return Photo{
		InPath:    path,
		Taken:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
		Latitude:  51.50711,
		Longitude: 7.46981,
		Altitude:  math.NaN(),
	}
}

func TestRenameInto(t *testing.T) {
	dir := t.TempDir()
	content := []byte("jpeg bytes")
	p := writePhoto(t, dir, "IMG_0001.jpg", content)

	outDir := filepath.Join(dir, "images-renamed")
	s := &Station{Name: "saarlandstr_open_space_vegetation"}

	dst, err := renameInto(outDir, s, p)
	if err != nil {
		t.Fatalf("renameInto: %v", err)
	}

	want := filepath.Join(outDir, "saarlandstr_open_space_vegetation_2024-06-01T10:00:00Z.jpg")
	if dst != want {
		t.Errorf("dst = %s, want %s", dst, want)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("copy is not byte-identical to the input")
	}

	// copy, not move
	if _, err := os.Stat(p.InPath); err != nil {
		t.Errorf("original file is gone: %v", err)
	}
}

func TestRenameIntoOverwrites(t *testing.T) {
	dir := t.TempDir()
	first := writePhoto(t, dir, "a.jpg", []byte("first"))
	second := writePhoto(t, dir, "b.jpg", []byte("second"))

	outDir := filepath.Join(dir, "out")
	s := &Station{Name: "DOTAMW"}

	if _, err := renameInto(outDir, s, first); err != nil {
		t.Fatalf("renameInto first: %v", err)
	}
	dst, err := renameInto(outDir, s, second)
	if err != nil {
		t.Fatalf("renameInto second: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in output dir, want 1", len(entries))
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("file content = %q, want the later photo's bytes", got)
	}
}

func TestRenameIntoCreatesOutputDir(t *testing.T) {
	dir := t.TempDir()
	p := writePhoto(t, dir, "a.jpg", []byte("x"))

	outDir := filepath.Join(dir, "deeply", "nested", "out")
	if _, err := renameInto(outDir, &Station{Name: "s"}, p); err != nil {
		t.Fatalf("renameInto: %v", err)
	}
	if _, err := os.Stat(outDir); err != nil {
		t.Errorf("output dir was not created: %v", err)
	}
}
