package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"inoctl"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inoctl [flags] <sketch.ino>",
		Short: "Compile, upload and monitor Arduino sketches",
		Long: `Compile a sketch for an attached Arduino board, optionally upload it,
and optionally stream the board's serial output to the console and a
rotating record file.

Board, port, speeds and FQBN are inferred from the attached hardware and
the sketch itself whenever they are not given explicitly. Ambiguities are
fatal: with devices for more than one board family attached, or several
candidate ports, pass --board or --port.

Examples:
  inoctl blink.ino
  inoctl -u blink.ino
  inoctl -u -c blink.ino
  inoctl -u -r --stty -t 3 blink.ino
  inoctl -n -c -p /dev/ttyACM1 blink.ino`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	cmd.Flags().BoolP("version", "V", false, "Print the version and exit")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output (also passed to arduino-cli)")
	cmd.Flags().BoolP("upload", "u", false, "Upload the compiled sketch to the board")
	cmd.Flags().StringP("board", "b", "", "Board type: uno or nano (default: probed)")
	cmd.Flags().StringP("port", "p", "", "Serial port device (default: probed)")
	cmd.Flags().IntP("speed", "s", 0, "Upload baud rate (default: per board)")
	cmd.Flags().StringP("fqbn", "B", "", "Fully-qualified board name (default: per board)")
	cmd.Flags().StringP("builddir", "d", "", "Build directory (default: <sketch dir>/build)")
	cmd.Flags().BoolP("catusb", "c", false, "Stream serial output after the other stages")
	cmd.Flags().Bool("stty", false, "Configure the serial line (raw mode, read speed)")
	cmd.Flags().BoolP("recordusb", "r", false, "Record serial output to the rotating ring")
	cmd.Flags().String("recordfile", "", "Record serial output to this file instead of the ring")
	cmd.Flags().BoolP("nocompile", "n", false, "Skip compilation")
	cmd.Flags().Int("readspeed", 0, "Baud rate for reading serial output (default: inferred from the sketch)")
	cmd.Flags().StringP("testplan", "t", "", "Value for the TESTPLAN build-time define")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	cobra.CheckErr(viper.BindPFlags(cmd.Flags()))
	cobra.CheckErr(viper.BindEnv("libraries", "ARDUINO_LIBS"))

	return cmd
}

func run(sketch string) error {
	noColor := viper.GetBool("no-color")

	logger, err := newLogger(viper.GetBool("verbose"), noColor)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := inoctl.Options{
		Sketch:     sketch,
		Board:      viper.GetString("board"),
		Port:       viper.GetString("port"),
		Speed:      viper.GetInt("speed"),
		FQBN:       viper.GetString("fqbn"),
		BuildDir:   viper.GetString("builddir"),
		ReadSpeed:  viper.GetInt("readspeed"),
		Upload:     viper.GetBool("upload"),
		NoCompile:  viper.GetBool("nocompile"),
		CatUSB:     viper.GetBool("catusb"),
		Stty:       viper.GetBool("stty"),
		RecordUSB:  viper.GetBool("recordusb"),
		RecordFile: viper.GetString("recordfile"),
		TestPlan:   viper.GetString("testplan"),
		Verbose:    viper.GetBool("verbose"),
		NoColor:    noColor,
		Libraries:  viper.GetString("libraries"),
	}

	cfg, err := inoctl.Resolve(logger, opts)
	if err != nil {
		return err
	}

	builder := inoctl.Builder{Runner: inoctl.ExecRunner{}, Logger: logger}

	if cfg.Compile {
		banner(noColor, "compile %s (%s)", cfg.Sketch, cfg.FQBN)
		if err := builder.Compile(cfg); err != nil {
			return err
		}
	}

	if cfg.Upload {
		banner(noColor, "upload %s -> %s", cfg.BuildDir, cfg.Port)
		if err := builder.Upload(cfg); err != nil {
			return err
		}
	}

	if cfg.Stty {
		banner(noColor, "stty %s %d", cfg.Port, cfg.ReadSpeed)
		if err := inoctl.ConfigureLine(cfg.Port, cfg.ReadSpeed); err != nil {
			return err
		}
	}

	if cfg.CatUSB {
		banner(noColor, "read %s @ %d", cfg.Port, cfg.ReadSpeed)
		return runSession(logger, cfg)
	}

	return nil
}

// runSession streams serial output until interrupted. The session itself
// guarantees the end marker on every exit path.
func runSession(logger *zap.Logger, cfg inoctl.Config) error {
	record, err := inoctl.OpenRecord(cfg)
	if err != nil {
		return err
	}
	defer record.Close()

	port, err := inoctl.OpenPort(cfg.Port, cfg.ReadSpeed)
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, shutting down...\n")
		cancel()
	}()

	logger.Debug("serial session started", zap.String("port", cfg.Port))

	sess := inoctl.Session{Console: os.Stdout, Record: record}
	return sess.Stream(ctx, cfg, port)
}

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

func banner(noColor bool, format string, args ...any) {
	line := fmt.Sprintf("==> "+format, args...)
	if !noColor {
		line = bannerStyle.Render(line)
	}
	fmt.Println(line)
}

// newLogger builds the stderr logger. Verbose raises the level to debug;
// no-color drops the level colouring.
func newLogger(verbose, noColor bool) (*zap.Logger, error) {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.DisableStacktrace = true
	logCfg.EncoderConfig.EncodeCaller = nil
	logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if noColor {
		logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return logCfg.Build()
}
