package inoctl

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestRecordBaseName(t *testing.T) {
	tests := []struct {
		sketch string
		want   string
	}{
		{"blink.ino", "blink"},
		{"a/b/sketch.ino", "sketch"},
		{"noext", "noext"},
		{".ino", "out"},
		{"", "out"},
	}

	for _, tt := range tests {
		if got := RecordBaseName(tt.sketch); got != tt.want {
			t.Errorf("RecordBaseName(%q) = %q, want %q", tt.sketch, got, tt.want)
		}
	}
}

func TestRotateRecordsRing(t *testing.T) {
	dir := t.TempDir()

	// 17 successive sessions for the same base name.
	for run := 1; run <= RecordSlots+1; run++ {
		path, err := RotateRecords(dir, "blink.ino")
		if err != nil {
			t.Fatalf("run %d: RotateRecords failed: %v", run, err)
		}
		if filepath.Base(path) != "blink-00.txt" {
			t.Fatalf("run %d: new file = %s, want blink-00.txt", run, filepath.Base(path))
		}
		if err := os.WriteFile(path, []byte(fmt.Sprintf("run %d", run)), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != RecordSlots {
		t.Errorf("ring holds %d files, want %d", len(entries), RecordSlots)
	}

	// Slot 0 is the newest run, slot 15 the oldest surviving one (run 2;
	// run 1 was pushed off the end).
	checks := map[string]string{
		"blink-00.txt": "run 17",
		"blink-01.txt": "run 16",
		"blink-15.txt": "run 2",
	}
	for name, want := range checks {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, string(data), want)
		}
	}
}

func TestRotateRecordsCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tmp")
	path, err := RotateRecords(dir, "blink.ino")
	if err != nil {
		t.Fatalf("RotateRecords failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("record path %s not under %s", path, dir)
	}
}

func TestOpenRecord(t *testing.T) {
	t.Run("discard when not recording", func(t *testing.T) {
		w, err := OpenRecord(Config{Record: false})
		if err != nil {
			t.Fatalf("OpenRecord failed: %v", err)
		}
		defer w.Close()
		if _, err := w.Write([]byte("dropped")); err != nil {
			t.Errorf("discard write failed: %v", err)
		}
	})

	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.txt")
		w, err := OpenRecord(Config{Record: true, RecordFile: path})
		if err != nil {
			t.Fatalf("OpenRecord failed: %v", err)
		}
		if _, err := w.Write([]byte("hello")); err != nil {
			t.Fatal(err)
		}
		w.Close()
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "hello" {
			t.Errorf("record content = %q, want %q", string(data), "hello")
		}
	})

	t.Run("ring file", func(t *testing.T) {
		dir := t.TempDir()
		w, err := OpenRecord(Config{Record: true, RecordDir: dir, Sketch: "blink.ino"})
		if err != nil {
			t.Fatalf("OpenRecord failed: %v", err)
		}
		w.Close()
		if _, err := os.Stat(filepath.Join(dir, "blink-00.txt")); err != nil {
			t.Errorf("ring file not created: %v", err)
		}
	})
}
