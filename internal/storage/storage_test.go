package storage

import (
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	path, err := store.Save("report.pdf", strings.NewReader("contents"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "attachments") {
		t.Errorf("path = %q, want attachments/ namespace", path)
	}
	if !strings.HasSuffix(path, "_report.pdf") {
		t.Errorf("path = %q, want original name preserved", path)
	}

	f, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil || string(data) != "contents" {
		t.Errorf("read back %q, %v", data, err)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Open(path); err == nil {
		t.Error("Open succeeded after Remove")
	}
	// Removing a missing file is not an error.
	if err := store.Remove(path); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	path, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(path, "..") {
		t.Errorf("path %q escapes the store", path)
	}
}

func TestSavedNamesDoNotCollide(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	p1, err := store.Save("a.txt", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	p2, err := store.Save("a.txt", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p1 == p2 {
		t.Errorf("same path %q for two uploads of the same name", p1)
	}
}
