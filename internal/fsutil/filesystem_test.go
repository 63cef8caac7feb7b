package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	m := NewMemoryFileSystem()

	data := []byte("hello")
	if err := m.WriteFile("out/a.json", data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data[0] = 'j'

	got, err := m.ReadFile("out/./a.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("ReadFile = %q, want %q", got, "hello")
	}
}

func TestMemoryFileSystem_Create(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("plot.png")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Not visible until closed.
	if got, _ := m.ReadFile("plot.png"); len(got) != 0 {
		t.Errorf("data visible before Close: %q", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got, err := m.ReadFile("plot.png")
	if err != nil || string(got) != "abc" {
		t.Errorf("ReadFile = %q, %v", got, err)
	}
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.ReadFile("nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.MkdirAll("a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for _, d := range []string{"a", "a/b", "a/b/c"} {
		if !m.IsDir(d) {
			t.Errorf("IsDir(%q) = false", d)
		}
	}
	if m.IsDir("a/b/c/d") {
		t.Error("IsDir reported a directory that was never created")
	}
}

func TestMemoryFileSystem_Names(t *testing.T) {
	m := NewMemoryFileSystem()
	_ = m.WriteFile("b", nil, 0644)
	_ = m.WriteFile("a", nil, 0644)
	names := m.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names = %v", names)
	}
}

func TestOSFileSystem(t *testing.T) {
	var osfs FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	if err := osfs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(dir, "x.txt")
	if err := osfs.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	w, err := osfs.Create(filepath.Join(dir, "y.txt"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _ = w.Write([]byte("two"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for name, want := range map[string]string{"x.txt": "one", "y.txt": "two"} {
		got, err := osfs.ReadFile(filepath.Join(dir, name))
		if err != nil || string(got) != want {
			t.Errorf("ReadFile(%s) = %q, %v; want %q", name, got, err, want)
		}
	}
}
