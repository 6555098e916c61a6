package main

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"github.com/younwookim/sceneloop/internal/application/game"
	"github.com/younwookim/sceneloop/internal/application/replay"
	"github.com/younwookim/sceneloop/internal/application/state"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
	"github.com/younwookim/sceneloop/internal/infrastructure/logging"
	"github.com/younwookim/sceneloop/internal/infrastructure/window"
)

// recordAuto is the --record value used when the flag has no file name
const recordAuto = "auto"

// defaultHeadlessFrames bounds headless runs when neither flag nor config sets a limit
const defaultHeadlessFrames = 600

// options stores global CLI options shared between commands
type options struct {
	configDir string
	logLevel  string
	logOut    io.Writer

	cfg    *config.EngineConfig
	logger *slog.Logger
}

func main() {
	if err := execute(os.Args[1:], os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute builds the root command, runs it with args and returns any error
func execute(args []string, logOut io.Writer) error {
	opts := &options{logOut: logOut}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "game",
		Short:        "Scene-driven game loop demo",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configDir, "config", "c", "", "Directory with engine.json or engine.yaml (default: embedded)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCommand(opts),
		newHeadlessCommand(opts),
		newReplayCommand(opts),
	)

	return cmd
}

// load reads the config, applies environment overrides and builds the logger
func (o *options) load() error {
	var loader *config.Loader
	if o.configDir != "" {
		loader = config.NewLoader(o.configDir)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}

	cfg, err := loader.LoadEngine()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	environ, err := config.Environ(".env")
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg, environ); err != nil {
		return err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	o.cfg = cfg
	o.logger = logging.NewLogger(o.logOut, logging.ParseLevel(cfg.Log.Level))
	o.logger.Debug("config loaded", "initialScene", cfg.Scenes.Initial, "level", cfg.Log.Level)
	return nil
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open a window and run the demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := newDemoGame(opts.cfg.Scenes.Initial, 0, true, opts.logger)
			host := window.New(g, opts.cfg.Window, nil, opts.logger)
			return host.Run()
		},
	}
}

func newHeadlessCommand(opts *options) *cobra.Command {
	var (
		frames int
		record string
	)

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the demo without a window for a number of frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("frames") {
				frames = opts.cfg.Headless.Frames
				if frames == 0 {
					frames = defaultHeadlessFrames
				}
			}
			if frames <= 0 {
				return fmt.Errorf("frames must be positive, got %d", frames)
			}

			var gameOpts []game.Option
			var rec *replay.Recorder
			if record == recordAuto {
				record = replay.GenerateFilename()
			}
			if record != "" {
				rec = replay.NewRecorder(time.Now(), opts.cfg.Scenes.Initial)
				gameOpts = append(gameOpts, game.WithObserver(rec.Observe))
			}

			gd := runHeadless(opts, uint64(frames), gameOpts...)
			opts.logger.Info("headless run finished", "frames", gd.Frame(), "frameRate", gd.FrameRate())

			if rec != nil {
				rec.Stop()
				if err := rec.Save(record); err != nil {
					return fmt.Errorf("failed to save recording: %w", err)
				}
				opts.logger.Info("recording saved", "file", record, "frames", rec.FrameCount())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", defaultHeadlessFrames, "Number of iterations to run")
	cmd.Flags().StringVar(&record, "record", "", "Record frame timing to file (e.g., --record=trace.json, bare --record picks a timestamped name)")
	cmd.Flags().Lookup("record").NoOptDefVal = recordAuto

	return cmd
}

func newReplayCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <trace.json>",
		Short: "Re-run the demo headless with the timing of a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := replay.LoadTrace(args[0])
			if err != nil {
				return err
			}
			if len(data.Frames) == 0 {
				return fmt.Errorf("trace %s has no frames", args[0])
			}

			clock, err := replay.NewReplayer(*data)
			if err != nil {
				return err
			}

			start, _ := time.Parse(time.RFC3339Nano, data.StartTime)
			rec := replay.NewRecorder(start, data.Scene)

			runHeadless(opts, uint64(clock.TotalFrames()),
				game.WithClock(clock),
				game.WithObserver(rec.Observe),
			)

			if !reflect.DeepEqual(rec.Data().Frames, data.Frames) {
				return fmt.Errorf("replay diverged from %s", args[0])
			}
			opts.logger.Info("replay matched", "file", args[0], "frames", clock.CurrentFrame())
			return nil
		},
	}
}

func runHeadless(opts *options, frames uint64, gameOpts ...game.Option) *state.GameData {
	g := newDemoGame(opts.cfg.Scenes.Initial, frames, false, opts.logger)
	c := game.NewContainer(append([]game.Option{game.WithLogger(opts.logger)}, gameOpts...)...)
	return c.Run(g)
}
