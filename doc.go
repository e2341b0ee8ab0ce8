// Package inoctl automates the compile/upload/monitor loop for Arduino-class
// boards on Linux.
//
// It resolves the attached board, its serial port and speeds from explicit
// flags or by probing /dev, shells out to arduino-cli for compilation and
// upload, and can configure the serial line and stream the board's output to
// the console and a rotating record file.
//
// # Resolution
//
// Two board families are supported:
//
//	uno   ttyACM*  115200  arduino:avr:uno
//	nano  ttyUSB*  57600   arduino:avr:nano:cpu=atmega328old
//
// Anything not given explicitly is inferred: the board from which family has
// device nodes present, the port from the sole matching node, speed and FQBN
// from the family, the build directory from the sketch location, and the
// read speed from a best-effort scan of the sketch for baud-rate literals.
// Every ambiguity is fatal; there are no partial runs.
//
// # Record files
//
// Serial sessions are framed by begin/end markers and recorded into a
// 16-slot ring of <base>-NN.txt files, newest at slot 00.
//
// # Errors
//
// Errors carry fixed process exit codes: 1 for usage errors, 10 for
// unresolvable board/port conditions, 99 for internal guards, and the
// child's own status when arduino-cli fails. Use errors.Is with the
// exported sentinels to classify programmatically.
package inoctl
