package inoctl

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// baudConstant converts an integer baud rate to the termios constant.
// The table covers the rates an AVR-class board can plausibly run at.
func baudConstant(rate int) (uint32, error) {
	switch rate {
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 28800:
		// No termios constant exists for 28800; it is still a valid rate
		// for read-speed inference but cannot be set on the line.
		return 0, fmt.Errorf("%w: %d has no termios constant", ErrInvalidSpeed, rate)
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSpeed, rate)
	}
}

// ValidSpeed reports whether rate is accepted for --speed/--readspeed.
func ValidSpeed(rate int) bool {
	switch rate {
	case 300, 600, 1200, 2400, 4800, 9600, 19200, 28800, 38400, 57600, 115200, 230400:
		return true
	default:
		return false
	}
}

// ConfigureLine puts the serial line into raw 8N1 mode at the given speed
// with flow control and echo disabled, so that a plain read of the device
// yields the board's output unmangled. Equivalent to the classic
// "stty -F <port> <speed> raw -echo" incantation.
func ConfigureLine(device string, speed int) error {
	baud, err := baudConstant(speed)
	if err != nil {
		return usageError(err)
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", device, err)
	}
	defer unix.Close(fd)

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %v", err)
	}

	// Raw mode, 8N1. Clearing Iflag drops IXON/IXOFF (software flow
	// control); clearing Lflag drops ECHO and canonical processing;
	// leaving CRTSCTS out of Cflag disables hardware flow control.
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	// Blocking reads: return as soon as a single byte is available.
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baud
	termios.Ispeed = baud
	termios.Ospeed = baud

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %v", err)
	}

	return nil
}
