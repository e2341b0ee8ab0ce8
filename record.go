package inoctl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// RecordSlots is the depth of the record-file ring kept per base name.
const RecordSlots = 16

// DefaultRecordDir returns the directory rotating record files live in.
func DefaultRecordDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tmp"
	}
	return filepath.Join(home, "tmp")
}

// RecordBaseName derives the ring base name from the sketch path: the file
// name minus its extension, or "out" when nothing remains.
func RecordBaseName(sketch string) string {
	base := filepath.Base(sketch)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return "out"
	}
	return base
}

// slotPath returns the ring file path for a slot index.
func slotPath(dir, base string, slot int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%02d.txt", base, slot))
}

// OpenRecord returns the sink session output is persisted to. Without
// recording it is a discarding sink; with an explicit record file that file
// is truncated and used; otherwise the ring is rotated and slot 0 opened.
func OpenRecord(cfg Config) (io.WriteCloser, error) {
	if !cfg.Record {
		return nopWriteCloser{io.Discard}, nil
	}

	path := cfg.RecordFile
	if path == "" {
		var err error
		path, err = RotateRecords(cfg.RecordDir, cfg.Sketch)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// RotateRecords shifts the ring one slot older and returns the path the new
// session should write. Slot 15 is oldest: the shift renames slot i-1 onto
// slot i for i = 15 down to 1, discarding slot 15's prior content, and the
// caller creates slot 0. Rotation happens before the new file is opened and
// never concurrently.
func RotateRecords(dir, sketch string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create record dir: %w", err)
	}

	base := RecordBaseName(sketch)
	for i := RecordSlots - 1; i > 0; i-- {
		prev := slotPath(dir, base, i-1)
		if _, err := os.Stat(prev); err != nil {
			continue
		}
		if err := os.Rename(prev, slotPath(dir, base, i)); err != nil {
			return "", fmt.Errorf("failed to rotate %s: %w", prev, err)
		}
	}

	return slotPath(dir, base, 0), nil
}
