package inoctl

import "fmt"

// Board identifies a supported microcontroller target family.
type Board string

const (
	BoardUno  Board = "uno"
	BoardNano Board = "nano"
)

// BoardSpec holds the per-family constants: the device-node pattern the
// board enumerates under on Linux, the upload speed its bootloader expects,
// and the FQBN the toolchain selects it by.
type BoardSpec struct {
	DeviceGlob string
	Speed      int
	FQBN       string
}

// boardSpecs is the static lookup table for the two supported families.
// Unos enumerate as CDC/ACM devices; nanos carry an FT232/CH340 USB-serial
// bridge and show up as ttyUSB. The nano entry targets the old bootloader.
var boardSpecs = map[Board]BoardSpec{
	BoardUno: {
		DeviceGlob: "ttyACM*",
		Speed:      115200,
		FQBN:       "arduino:avr:uno",
	},
	BoardNano: {
		DeviceGlob: "ttyUSB*",
		Speed:      57600,
		FQBN:       "arduino:avr:nano:cpu=atmega328old",
	},
}

// ParseBoard validates an explicit board identifier.
func ParseBoard(name string) (Board, error) {
	switch Board(name) {
	case BoardUno:
		return BoardUno, nil
	case BoardNano:
		return BoardNano, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: uno, nano)", ErrUnknownBoard, name)
	}
}

// Spec returns the static constants for a board family.
func (b Board) Spec() (BoardSpec, error) {
	spec, ok := boardSpecs[b]
	if !ok {
		return BoardSpec{}, internalError("board-spec-" + string(b))
	}
	return spec, nil
}

func (b Board) String() string {
	return string(b)
}
