package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_CreateAndOpen(t *testing.T) {
	dir := t.TempDir()
	osfs := OSFileSystem{}

	w, err := CreateAll(osfs, filepath.Join(dir, "nested", "points.txt"))
	if err != nil {
		t.Fatalf("CreateAll failed: %v", err)
	}
	if _, err := io.WriteString(w, "1 2\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	r, err := osfs.Open(filepath.Join(dir, "nested", "points.txt"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "1 2\n" {
		t.Errorf("expected %q, got %q", "1 2\n", data)
	}
}

func TestOSFileSystem_OpenMissing(t *testing.T) {
	_, err := OSFileSystem{}.Open(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/report.txt")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := mfs.ReadFile("/out/report.txt")
	if len(data) != 0 {
		t.Errorf("expected empty file before Close, got %q", data)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err = mfs.ReadFile("/out/report.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()
	_, err := mfs.Open("nope.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_CreateAll(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("a.txt", []byte("x"))

	w, err := CreateAll(mfs, "plots/run1/clusters.png")
	if err != nil {
		t.Fatalf("CreateAll failed: %v", err)
	}
	w.Close()

	if !mfs.HasDir("plots/run1") || !mfs.HasDir("plots") {
		t.Error("expected parent directories to be recorded")
	}
	files := mfs.Files()
	if len(files) != 2 || files[0] != "a.txt" || files[1] != "plots/run1/clusters.png" {
		t.Errorf("unexpected file list %v", files)
	}
}
