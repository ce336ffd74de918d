package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	path := filepath.Join(t.TempDir(), "data.bin")

	w, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := fsys.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil || string(data) != "hello" {
		t.Errorf("read %q, %v; want hello", data, err)
	}

	if err := fsys.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("file still exists after Remove: %v", err)
	}
}

func TestMemoryFileSystem_CreateCommitsOnClose(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("out/track.sbet")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !m.Exists("out/track.sbet") {
		t.Error("Create should truncate/create the file immediately")
	}
	w.Write([]byte{1, 2, 3})
	if data, _ := m.ReadFile("out/track.sbet"); len(data) != 0 {
		t.Errorf("data visible before Close: %v", data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("second Close = %v, want ErrClosed", err)
	}

	data, err := m.ReadFile("out/./track.sbet")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "\x01\x02\x03" {
		t.Errorf("data = %v", data)
	}
}

func TestMemoryFileSystem_Open(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("in.sbet", []byte("abcdef"))

	f, err := m.Open("in.sbet")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Size() != 6 || fi.Name() != "in.sbet" || !fi.Mode().IsRegular() {
		t.Errorf("unexpected file info: size=%d name=%s mode=%v", fi.Size(), fi.Name(), fi.Mode())
	}

	data, _ := io.ReadAll(f)
	if string(data) != "abcdef" {
		t.Errorf("data = %q", data)
	}

	if _, err := m.Open("missing.sbet"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open missing = %v, want ErrNotExist", err)
	}
}

func TestMemoryFileSystem_Remove(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("a", []byte("x"))

	if err := m.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if m.Exists("a") {
		t.Error("file exists after Remove")
	}
	if err := m.Remove("a"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second Remove = %v, want ErrNotExist", err)
	}
}

func TestMemoryFileSystem_FailCreate(t *testing.T) {
	m := NewMemoryFileSystem()
	m.FailCreate = errors.New("read-only")

	if _, err := m.Create("x"); err == nil {
		t.Fatal("expected Create to fail")
	}
	if m.Exists("x") {
		t.Error("failed Create should not create the file")
	}
}
