package inoctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.bug.st/serial"
)

// Session framing markers. Everything between them in a record file is raw
// serial output.
const (
	BeginMarker = "---------- begin ----------"
	EndMarker   = "---------- end ----------"
)

const stampFormat = "2006-01-02T15:04:05Z"

// OpenPort opens the serial device for reading at the given speed, 8N1.
func OpenPort(device string, speed int) (io.ReadCloser, error) {
	mode := &serial.Mode{
		BaudRate: speed,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", device, err)
	}
	return port, nil
}

// Session tees serial output to the console and a record sink. Use
// io.Discard as Record when nothing should be persisted.
type Session struct {
	Console io.Writer
	Record  io.Writer
	Now     func() time.Time // defaults to time.Now
}

// Stream writes the session header, then copies src to console and record
// until src closes, errors, or ctx is cancelled (the source is closed to
// unblock the read). The end marker is appended exactly once on every exit
// path after the stream has started.
func (s Session) Stream(ctx context.Context, cfg Config, src io.ReadCloser) error {
	w := io.MultiWriter(s.Console, s.Record)

	if err := s.writeHeader(w, cfg); err != nil {
		return err
	}

	defer fmt.Fprintln(w, EndMarker)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			src.Close()
		case <-done:
		}
	}()

	_, err := io.Copy(w, src)
	if ctx.Err() != nil {
		// Interrupted by the user; the read error is just the closed port.
		return nil
	}
	return err
}

// writeHeader emits the fixed-format header block: resolved settings, the
// sketch's modification time, the session start time, a blank line and the
// begin marker.
func (s Session) writeHeader(w io.Writer, cfg Config) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	modified := "unknown"
	if info, err := os.Stat(cfg.Sketch); err == nil {
		modified = info.ModTime().UTC().Format(stampFormat)
	}

	_, err := fmt.Fprintf(w, "speed: %d\nfqbn: %s\nport: %s\nfile: %s\nmodified: %s\nstarted: %s\n\n%s\n",
		cfg.ReadSpeed, cfg.FQBN, cfg.Port, cfg.Sketch,
		modified, now().UTC().Format(stampFormat), BeginMarker)
	return err
}
