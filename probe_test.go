package inoctl

import (
	"os"
	"path/filepath"
	"testing"
)

// makeDevDir fabricates a device directory containing the given node names.
func makeDevDir(t *testing.T, nodes ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, node := range nodes {
		if err := os.WriteFile(filepath.Join(dir, node), nil, 0o644); err != nil {
			t.Fatalf("creating %s: %v", node, err)
		}
	}
	return dir
}

func TestProbeDevices(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []string
		wantUno  int
		wantNano int
	}{
		{"empty", nil, 0, 0},
		{"single uno", []string{"ttyACM0"}, 1, 0},
		{"single nano", []string{"ttyUSB0"}, 0, 1},
		{"both families", []string{"ttyACM0", "ttyUSB0"}, 1, 1},
		{"multiple unos", []string{"ttyACM0", "ttyACM1", "ttyACM2"}, 3, 0},
		{"unrelated nodes", []string{"ttyS0", "console", "null"}, 0, 0},
		{"mixed noise", []string{"ttyUSB0", "ttyS0", "random"}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeDevDir(t, tt.nodes...)
			result, err := ProbeDevices(dir)
			if err != nil {
				t.Fatalf("ProbeDevices failed: %v", err)
			}
			if len(result.Uno) != tt.wantUno {
				t.Errorf("uno candidates = %d, want %d", len(result.Uno), tt.wantUno)
			}
			if len(result.Nano) != tt.wantNano {
				t.Errorf("nano candidates = %d, want %d", len(result.Nano), tt.wantNano)
			}
		})
	}
}

func TestProbeDevicesSorted(t *testing.T) {
	dir := makeDevDir(t, "ttyACM2", "ttyACM0", "ttyACM1")
	result, err := ProbeDevices(dir)
	if err != nil {
		t.Fatalf("ProbeDevices failed: %v", err)
	}
	for i := 1; i < len(result.Uno); i++ {
		if result.Uno[i-1] > result.Uno[i] {
			t.Errorf("candidates not sorted: %s > %s", result.Uno[i-1], result.Uno[i])
		}
	}
}

func TestProbeDevicesMissingDir(t *testing.T) {
	if _, err := ProbeDevices(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing device dir")
	}
}

func TestCandidates(t *testing.T) {
	result := ProbeResult{Uno: []string{"/dev/ttyACM0"}, Nano: []string{"/dev/ttyUSB0", "/dev/ttyUSB1"}}
	if got := result.Candidates(BoardUno); len(got) != 1 {
		t.Errorf("uno candidates = %d, want 1", len(got))
	}
	if got := result.Candidates(BoardNano); len(got) != 2 {
		t.Errorf("nano candidates = %d, want 2", len(got))
	}
	if got := result.Candidates(Board("mega")); got != nil {
		t.Errorf("unknown board candidates = %v, want nil", got)
	}
}
