package inoctl

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options carries the raw flag and environment values as parsed. Semantic
// validation happens in Resolve.
type Options struct {
	Sketch string

	Board     string
	Port      string
	Speed     int
	FQBN      string
	BuildDir  string
	ReadSpeed int

	Upload    bool
	NoCompile bool
	CatUSB    bool
	Stty      bool
	RecordUSB bool
	Verbose   bool
	NoColor   bool

	RecordFile string // explicit record file; empty selects the rotating ring
	TestPlan   string
	Libraries  string // extra library search path, from ARDUINO_LIBS

	DevDir    string // device directory to probe; defaults to DefaultDeviceDir
	RecordDir string // ring directory; defaults to DefaultRecordDir()
}

// Config is the fully resolved run configuration. It is built once and
// never mutated afterwards; stages 3 and 4 only read it.
type Config struct {
	Sketch    string
	Board     Board
	Port      string
	Speed     int
	FQBN      string
	BuildDir  string
	ReadSpeed int

	Compile bool
	Upload  bool
	CatUSB  bool
	Stty    bool
	Record  bool
	Verbose bool
	NoColor bool

	RecordFile string
	RecordDir  string
	TestPlan   string
	Libraries  string
}

// Resolve fills in every unspecified piece of device targeting information:
// explicit flags win, then environment probing, then static defaults. Every
// ambiguity or missing resource is fatal; no partial runs.
func Resolve(logger *zap.Logger, opts Options) (Config, error) {
	cfg := Config{
		Sketch:     opts.Sketch,
		Compile:    !opts.NoCompile,
		Upload:     opts.Upload,
		Stty:       opts.Stty,
		Record:     opts.RecordUSB || opts.RecordFile != "",
		Verbose:    opts.Verbose,
		NoColor:    opts.NoColor,
		RecordFile: opts.RecordFile,
		TestPlan:   opts.TestPlan,
		Libraries:  opts.Libraries,
	}

	// Recording implies reading.
	cfg.CatUSB = opts.CatUSB || cfg.Record

	if cfg.Sketch == "" {
		return Config{}, usageError(fmt.Errorf("no sketch file given"))
	}
	if _, err := os.Stat(cfg.Sketch); err != nil {
		return Config{}, usageError(fmt.Errorf("%w: %s", ErrMissingSketch, cfg.Sketch))
	}

	// Explicit board identifiers are checked before any probing.
	if opts.Board != "" {
		board, err := ParseBoard(opts.Board)
		if err != nil {
			return Config{}, usageError(err)
		}
		cfg.Board = board
	}

	devDir := opts.DevDir
	if devDir == "" {
		devDir = DefaultDeviceDir
	}

	// A port is only required when something will talk to the device.
	needPort := cfg.Upload || cfg.CatUSB || cfg.Stty

	var probe ProbeResult
	needProbe := cfg.Board == "" || (needPort && opts.Port == "")
	if needProbe {
		var err error
		probe, err = ProbeDevices(devDir)
		if err != nil {
			return Config{}, resolutionError(fmt.Errorf("probing %s: %w", devDir, err))
		}
		logger.Debug("probed device nodes",
			zap.Int("uno", len(probe.Uno)),
			zap.Int("nano", len(probe.Nano)))
	}

	if cfg.Board == "" {
		switch {
		case len(probe.Uno) > 0 && len(probe.Nano) > 0:
			return Config{}, resolutionError(fmt.Errorf("%w (uno: %d, nano: %d)",
				ErrAmbiguousBoard, len(probe.Uno), len(probe.Nano)))
		case len(probe.Uno) > 0:
			cfg.Board = BoardUno
		case len(probe.Nano) > 0:
			cfg.Board = BoardNano
		default:
			return Config{}, resolutionError(fmt.Errorf("%w in %s", ErrNoBoard, devDir))
		}
	}

	spec, err := cfg.Board.Spec()
	if err != nil {
		return Config{}, err
	}

	if needPort {
		port := opts.Port
		if port == "" {
			candidates := probe.Candidates(cfg.Board)
			switch len(candidates) {
			case 1:
				port = candidates[0]
			case 0:
				return Config{}, resolutionError(fmt.Errorf("%w %s in %s", ErrNoPort, cfg.Board, devDir))
			default:
				return Config{}, resolutionError(fmt.Errorf("%w (%d candidates for %s)",
					ErrAmbiguousPort, len(candidates), cfg.Board))
			}
		}
		if _, err := os.Stat(port); err != nil {
			return Config{}, resolutionError(fmt.Errorf("%w: %s", ErrPortNotFound, port))
		}
		cfg.Port = port
	}

	cfg.Speed = opts.Speed
	if cfg.Speed == 0 {
		cfg.Speed = spec.Speed
	} else if !ValidSpeed(cfg.Speed) {
		return Config{}, usageError(fmt.Errorf("%w: %d", ErrInvalidSpeed, cfg.Speed))
	}

	cfg.FQBN = opts.FQBN
	if cfg.FQBN == "" {
		cfg.FQBN = spec.FQBN
	}

	cfg.BuildDir = opts.BuildDir
	if cfg.BuildDir == "" {
		cfg.BuildDir = defaultBuildDir(cfg.Sketch)
	}

	// The read speed matters only when the line will be configured or read.
	cfg.ReadSpeed = opts.ReadSpeed
	if cfg.ReadSpeed != 0 && !ValidSpeed(cfg.ReadSpeed) {
		return Config{}, usageError(fmt.Errorf("%w: %d", ErrInvalidSpeed, cfg.ReadSpeed))
	}
	if cfg.ReadSpeed == 0 && (cfg.Stty || cfg.CatUSB) {
		speed, err := InferReadSpeedFromFile(cfg.Sketch)
		if err != nil {
			return Config{}, resolutionError(fmt.Errorf("reading %s: %w", cfg.Sketch, err))
		}
		cfg.ReadSpeed = speed
		logger.Debug("inferred read speed", zap.Int("speed", speed))
	}

	cfg.RecordDir = opts.RecordDir
	if cfg.RecordDir == "" {
		cfg.RecordDir = DefaultRecordDir()
	}

	// Everything stage 3 consumes must be consistent by now.
	if cfg.Speed == 0 || cfg.FQBN == "" || cfg.BuildDir == "" {
		return Config{}, internalError("resolve-incomplete")
	}
	if needPort && cfg.Port == "" {
		return Config{}, internalError("resolve-port")
	}

	logger.Debug("resolved configuration",
		zap.String("board", cfg.Board.String()),
		zap.String("port", cfg.Port),
		zap.Int("speed", cfg.Speed),
		zap.String("fqbn", cfg.FQBN),
		zap.String("builddir", cfg.BuildDir))

	return cfg, nil
}

// defaultBuildDir derives the build directory from the sketch location:
// a/b/sketch.ino builds in a/b/build, a bare sketch.ino in ./build.
func defaultBuildDir(sketch string) string {
	dir := filepath.Dir(sketch)
	if dir == "." {
		return "build"
	}
	return filepath.Join(dir, "build")
}
