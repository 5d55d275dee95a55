package testutil

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMemoryFSWriteRead(t *testing.T) {
	m := NewMemoryFS()

	if err := m.MkdirAll("/cfg/app", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := m.WriteFile("/cfg/app/prefs.json", []byte(`{"a":"1"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := m.ReadFile("/cfg/app/prefs.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"a":"1"}` {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestMemoryFSNotExist(t *testing.T) {
	m := NewMemoryFS()

	_, err := m.ReadFile("/missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}

	_, err = m.Stat("/missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist from Stat, got %v", err)
	}
}

func TestMemoryFSRemove(t *testing.T) {
	m := NewMemoryFS()

	if err := m.MkdirAll("/cfg", 0755); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFile("/cfg/a", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Non-empty directory refuses Remove
	if err := m.Remove("/cfg"); err == nil {
		t.Error("expected error removing non-empty directory")
	}

	if err := m.Remove("/cfg/a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := m.Stat("/cfg/a"); !errors.Is(err, fs.ErrNotExist) {
		t.Error("file should be gone after Remove")
	}

	// RemoveAll clears subtrees
	if err := m.WriteFile("/cfg/b", []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.RemoveAll("/cfg"); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if _, err := m.Stat("/cfg"); !errors.Is(err, fs.ErrNotExist) {
		t.Error("directory should be gone after RemoveAll")
	}
}

func TestMemoryFSRename(t *testing.T) {
	m := NewMemoryFS()

	if err := m.MkdirAll("/cfg", 0755); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFile("/cfg/tmp", []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.Rename("/cfg/tmp", "/cfg/final"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if _, err := m.Stat("/cfg/tmp"); !errors.Is(err, fs.ErrNotExist) {
		t.Error("source should be gone after rename")
	}
	data, err := m.ReadFile("/cfg/final")
	if err != nil || string(data) != "data" {
		t.Errorf("destination content wrong: %s, %v", data, err)
	}
}

func TestMemoryFSReadDirSorted(t *testing.T) {
	m := NewMemoryFS()

	if err := m.MkdirAll("/cfg/sub", 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"/cfg/zeta", "/cfg/alpha"} {
		if err := m.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.ReadDir("/cfg")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"alpha", "sub", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entries = %v, want %v", names, want)
		}
	}
}

func TestMemoryFSErrorInjection(t *testing.T) {
	injected := errors.New("disk on fire")
	m := NewMemoryFS().WithError("/cfg/bad", injected)

	if _, err := m.ReadFile("/cfg/bad"); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
}
