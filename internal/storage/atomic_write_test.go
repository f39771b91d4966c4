package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "nested", "config")

		if err := AtomicWriteFile(filename, []byte("tenbrushes a,b"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("failed to read back file: %v", err)
		}
		if string(data) != "tenbrushes a,b" {
			t.Errorf("content mismatch: got %q", string(data))
		}
	})

	t.Run("overwrite leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "config")

		for _, content := range []string{"first", "second"} {
			if err := AtomicWriteFile(filename, []byte(content), 0644); err != nil {
				t.Fatalf("AtomicWriteFile(%q) failed: %v", content, err)
			}
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "second" {
			t.Errorf("expected last write to win, got %q", string(data))
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("expected only the target file, got %v", names)
		}
	})

	t.Run("parent is a file", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("directory sabotage behaves differently on Windows")
		}
		dir := t.TempDir()
		parent := filepath.Join(dir, "parent")
		if err := os.WriteFile(parent, []byte("file"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := AtomicWriteFile(filepath.Join(parent, "config"), []byte("x"), 0644); err == nil {
			t.Fatal("expected an error when the parent directory is a file")
		}
	})
}
