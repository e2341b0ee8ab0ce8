package inoctl

import (
	"os"
	"path"
	"path/filepath"
	"sort"
)

// DefaultDeviceDir is where board device nodes are probed for.
const DefaultDeviceDir = "/dev"

// ProbeResult holds the candidate device nodes found for each board family.
// Computed fresh on every run; never cached.
type ProbeResult struct {
	Uno  []string // full paths matching the uno device glob
	Nano []string // full paths matching the nano device glob
}

// ProbeDevices scans devDir for device nodes matching each family's glob.
// Matching is by name pattern only, mirroring a shell glob over /dev: no
// device-type verification is attempted.
func ProbeDevices(devDir string) (ProbeResult, error) {
	var result ProbeResult

	entries, err := os.ReadDir(devDir)
	if err != nil {
		return result, err
	}

	unoGlob := boardSpecs[BoardUno].DeviceGlob
	nanoGlob := boardSpecs[BoardNano].DeviceGlob

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(devDir, name)

		if ok, _ := path.Match(unoGlob, name); ok {
			result.Uno = append(result.Uno, full)
		}
		if ok, _ := path.Match(nanoGlob, name); ok {
			result.Nano = append(result.Nano, full)
		}
	}

	// Sort for consistent ordering
	sort.Strings(result.Uno)
	sort.Strings(result.Nano)

	return result, nil
}

// Candidates returns the probed nodes for the given board family.
func (r ProbeResult) Candidates(board Board) []string {
	switch board {
	case BoardUno:
		return r.Uno
	case BoardNano:
		return r.Nano
	default:
		return nil
	}
}
