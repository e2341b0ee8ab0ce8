package inoctl

import (
	"errors"
	"testing"
)

func TestParseBoard(t *testing.T) {
	tests := []struct {
		name    string
		want    Board
		wantErr bool
	}{
		{"uno", BoardUno, false},
		{"nano", BoardNano, false},
		{"mega", "", true},
		{"", "", true},
		{"UNO", "", true},
	}

	for _, tt := range tests {
		board, err := ParseBoard(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBoard(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrUnknownBoard) {
				t.Errorf("ParseBoard(%q) error = %v, want ErrUnknownBoard", tt.name, err)
			}
			continue
		}
		if board != tt.want {
			t.Errorf("ParseBoard(%q) = %v, want %v", tt.name, board, tt.want)
		}
	}
}

func TestBoardSpecs(t *testing.T) {
	tests := []struct {
		board Board
		glob  string
		speed int
		fqbn  string
	}{
		{BoardUno, "ttyACM*", 115200, "arduino:avr:uno"},
		{BoardNano, "ttyUSB*", 57600, "arduino:avr:nano:cpu=atmega328old"},
	}

	for _, tt := range tests {
		spec, err := tt.board.Spec()
		if err != nil {
			t.Fatalf("%s.Spec() error = %v", tt.board, err)
		}
		if spec.DeviceGlob != tt.glob {
			t.Errorf("%s glob = %q, want %q", tt.board, spec.DeviceGlob, tt.glob)
		}
		if spec.Speed != tt.speed {
			t.Errorf("%s speed = %d, want %d", tt.board, spec.Speed, tt.speed)
		}
		if spec.FQBN != tt.fqbn {
			t.Errorf("%s fqbn = %q, want %q", tt.board, spec.FQBN, tt.fqbn)
		}
	}
}

func TestBoardSpecUnknownIsInternal(t *testing.T) {
	_, err := Board("mega").Spec()
	if err == nil {
		t.Fatal("expected error for unknown board")
	}
	if ExitStatus(err) != ExitInternal {
		t.Errorf("exit status = %d, want %d", ExitStatus(err), ExitInternal)
	}
}
