package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestRotatingWriter_Append(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "tenslots.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := OpenRotatingWriter(path, 1, 2)
	if err != nil {
		t.Fatalf("OpenRotatingWriter: %v", err)
	}
	if _, err := w.Write([]byte("new\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old\nnew\n" {
		t.Fatalf("content = %q", data)
	}
}

func TestRotatingWriter_Rotates(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := openRotatingWriter(path, 50, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for _, c := range []string{"A", "B", "C", "D"} {
		if _, err := w.Write([]byte(strings.Repeat(c, 39) + "\n")); err != nil {
			t.Fatalf("Write %s: %v", c, err)
		}
	}

	for suffix, want := range map[string]string{
		"":   "D",
		".1": "C",
		".2": "B",
	} {
		data, err := os.ReadFile(path + suffix)
		if err != nil {
			t.Fatalf("read %s: %v", suffix, err)
		}
		if !strings.HasPrefix(string(data), want) || len(data) != 40 {
			t.Errorf("%s%s = %q, want 40 bytes of %s", path, suffix, data, want)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("expected no third backup, got err=%v", err)
	}
}

func TestRotatingWriter_NoBackups(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := openRotatingWriter(path, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for _, s := range []string{"12345678\n", "abcdefgh\n"} {
		if _, err := w.Write([]byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	data, _ := os.ReadFile(path)
	if string(data) != "abcdefgh\n" {
		t.Fatalf("content = %q", data)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Fatalf("unexpected backup: %v", err)
	}
}

func TestRotatingWriter_OversizedRecord(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := openRotatingWriter(path, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	big := strings.Repeat("x", 25)
	if _, err := w.Write([]byte(big)); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != big {
		t.Fatalf("an oversized first record should still be written whole, got %q", data)
	}
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	t.Parallel()
	w, err := OpenRotatingWriter(filepath.Join(t.TempDir(), "x.log"), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Fatal("expected error writing to closed writer")
	}
}

func TestRotatingWriter_Concurrent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := openRotatingWriter(path, 200, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	line := []byte(strings.Repeat("z", 19) + "\n")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := w.Write(line); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > 200 || info.Size()%20 != 0 {
		t.Fatalf("size = %d, want a whole number of records within the limit", info.Size())
	}
}
