package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestRegisterAndCreate(t *testing.T) {
	fsys := fstest.MapFS{"01.xsb": {Data: []byte("#@#\n")}}
	Register("test-fs", func() Pack {
		return NewFSPack("test-fs", "Test Pack", fsys)
	})

	if !Exists("test-fs") {
		t.Fatal("pack should exist after Register")
	}

	p, err := Create("test-fs")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Title() != "Test Pack" || p.Dir() != "" {
		t.Errorf("unexpected pack metadata: %q %q", p.Title(), p.Dir())
	}
	if _, err := fs.Stat(p.FS(), "01.xsb"); err != nil {
		t.Errorf("pack FS should expose level file: %v", err)
	}

	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create should fail for unknown pack")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Pack { return NewFSPack("test-dup", "Dup", fstest.MapFS{}) })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", func() Pack { return NewFSPack("test-dup", "Dup", fstest.MapFS{}) })
}

func TestRegisterDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.xsb"), []byte("#@#\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := RegisterDir("test-dir", "Local", dir); err != nil {
		t.Fatalf("RegisterDir failed: %v", err)
	}
	if err := RegisterDir("test-dir", "Local", dir); err == nil {
		t.Error("RegisterDir should reject a taken ID")
	}
	if err := RegisterDir("test-missing", "Missing", filepath.Join(dir, "nope")); err == nil {
		t.Error("RegisterDir should reject a missing directory")
	}
	if err := RegisterDir("test-file", "File", filepath.Join(dir, "a.xsb")); err == nil {
		t.Error("RegisterDir should reject a regular file")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "test-dir" {
			found = true
			if info.Dir != dir {
				t.Errorf("PackInfo.Dir = %q, expected %q", info.Dir, dir)
			}
		}
	}
	if !found {
		t.Error("List should include the directory pack")
	}

	p, _ := Create("test-dir")
	if _, err := fs.Stat(p.FS(), "a.xsb"); err != nil {
		t.Errorf("dir pack FS should expose level file: %v", err)
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %q >= %q", list[i-1].ID, list[i].ID)
		}
	}
}
