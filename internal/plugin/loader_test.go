package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("-- script"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderDiscover(t *testing.T) {
	workspace := t.TempDir()
	user := t.TempDir()
	writeScript(t, workspace, "b.lua")
	writeScript(t, workspace, "notes.txt")
	writeScript(t, user, "a.lua")
	writeScript(t, user, "b.lua")

	l := NewLoader("", WithPaths(workspace, filepath.Join(user, "missing"), user))
	scripts, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("Discover() found %d scripts, want 2", len(scripts))
	}
	if scripts[0].Name != "a" || scripts[1].Name != "b" {
		t.Errorf("names = %s, %s", scripts[0].Name, scripts[1].Name)
	}
	if scripts[1].Path != filepath.Join(workspace, "b.lua") {
		t.Errorf("b.lua resolved to %s, want the workspace copy", scripts[1].Path)
	}

	if _, err := l.Find("a"); err != nil {
		t.Errorf("Find(a) error = %v", err)
	}
	if _, err := l.Find("zzz"); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("Find(zzz) error = %v", err)
	}
}

func TestDefaultScriptPaths(t *testing.T) {
	paths := DefaultScriptPaths("/work")
	if len(paths) == 0 || paths[0] != filepath.Join("/work", ".easyprint", "scripts") {
		t.Errorf("DefaultScriptPaths() = %v", paths)
	}
}
