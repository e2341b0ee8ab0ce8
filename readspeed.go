package inoctl

import (
	"os"
	"strconv"
	"strings"
)

// DefaultReadSpeed is assumed when no rate literal is found in the sketch.
const DefaultReadSpeed = 9600

// knownReadSpeeds are the rate literals searched for, in fixed ascending
// order. The last one found in this scan order wins.
var knownReadSpeeds = [...]int{9600, 19200, 28800, 38400, 57600, 115200}

// InferReadSpeed scans sketch source text for known baud-rate literals and
// returns the winning rate. This is deliberately a best-effort substring
// scan, not a parser: literals inside comments or dead code count, and a
// rate mentioned anywhere selects it.
func InferReadSpeed(source string) int {
	speed := DefaultReadSpeed
	for _, rate := range knownReadSpeeds {
		if strings.Contains(source, strconv.Itoa(rate)) {
			speed = rate
		}
	}
	return speed
}

// InferReadSpeedFromFile applies InferReadSpeed to the contents of path.
func InferReadSpeedFromFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return InferReadSpeed(string(data)), nil
}
