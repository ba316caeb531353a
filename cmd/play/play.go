package play

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/bapple/cmd/common"
	"github.com/gigurra/bapple/cmd/play/audio"
	"github.com/gigurra/bapple/cmd/play/container"
	"github.com/gigurra/bapple/cmd/play/platform"
	"github.com/gigurra/bapple/cmd/play/player"
	"github.com/gigurra/bapple/cmd/play/screen"
	"github.com/spf13/cobra"
)

// ExitInterrupted is the exit status after Ctrl+C, following the shell
// convention of 128 + SIGINT.
const ExitInterrupted = 130

// warningPause gives the user time to read environment warnings before the
// screen is cleared.
const warningPause = 5 * time.Second

type Params struct {
	File     string  `pos:"true" help:"Path to a .bapple file."`
	FPS      float64 `pos:"true" optional:"true" help:"Frames per second. 0 takes the rate from the file's metadata." default:"0"`
	Loop     bool    `short:"l" optional:"true" help:"Start over when playback ends, until interrupted."`
	Password string  `short:"p" optional:"true" help:"Password for encrypted files (zip, 7z, rar)."`
	NoAudio  bool    `optional:"true" help:"Ignore the audio track and pace playback with the internal clock."`
	Verbose  bool    `short:"v" optional:"true" help:"Enable debug logging."`
}

// Cmd returns the root command. It plays the given file and carries subCmds.
func Cmd(version string, subCmds ...*cobra.Command) *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "bapple",
		Short: "Play text-art video in the terminal",
		Long: `Play a .bapple file: pre-rendered text-art frames, optionally with an audio track.

Playback follows the audio when the file has a track, and an internal clock otherwise.
Every 15 frames the position is corrected, so slow terminals skip frames instead of
drifting out of sync.

The frame rate comes from the file's metadata unless a frames-per-second value is given.

Examples:
  bapple movie.bapple
  bapple movie.bapple 24
  bapple --loop movie.bapple
  bapple -p secret movie.zip`,
		Version:     version,
		SubCmds:     subCmds,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.SetupLogging(params.Verbose)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := Run(ctx, params)
			switch {
			case err == nil:
			case errors.Is(err, player.ErrInterrupted):
				stop()
				common.Fail(os.Stderr, "bapple", err)
				os.Exit(ExitInterrupted)
			default:
				stop()
				common.Fail(os.Stderr, "bapple", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Env holds what Run needs from the outside world.
type Env struct {
	Out      *os.File
	Stderr   io.Writer
	Platform platform.Checker
	// OpenAudio starts playing a track. Nil means no audio support.
	OpenAudio func(data []byte) (player.Track, error)
	Pause     func(ctx context.Context, d time.Duration)
}

// DefaultEnv plays to the process's stdout with the real audio output.
func DefaultEnv() Env {
	env := Env{
		Out:      os.Stdout,
		Stderr:   os.Stderr,
		Platform: platform.Default(),
		Pause:    sleepCtx,
	}
	if audio.Available {
		env.OpenAudio = audio.Open
	}
	return env
}

func Run(ctx context.Context, params *Params) error {
	return RunWith(ctx, params, DefaultEnv())
}

// RunWith loads the file and plays it once, or until interrupted with Loop set.
// Every configuration problem is reported before anything is drawn.
func RunWith(ctx context.Context, params *Params, env Env) error {
	if err := player.ValidateFPS(params.FPS); err != nil {
		return err
	}

	slog.Info("processing frames", "file", params.File)
	c, err := container.Load(ctx, params.File, container.Options{Password: params.Password})
	if errors.Is(err, context.Canceled) {
		return player.ErrInterrupted
	}
	if err != nil {
		return err
	}
	defer c.Close()

	frametime, err := player.ResolveFrametime(params.FPS, c.Frametime)
	if err != nil {
		return err
	}
	slog.Debug("playback configured", "frames", c.Frames.Len(), "frametime", frametime, "audio", c.HasAudio)

	timing := chooseTiming(c, params, env)

	if c.HasAudio && env.OpenAudio != nil && !params.NoAudio {
		if warnings := env.Platform.AudioWarnings(); len(warnings) > 0 {
			for _, w := range warnings {
				common.Warn(env.Stderr, "%s", w)
			}
			env.Pause(ctx, warningPause)
		}
	}
	if err := env.Platform.EnableTerminal(); err != nil {
		common.Warn(env.Stderr, "%v", err)
	}
	warnIfTooSmall(c, env)

	p := player.New(c.Frames, screen.New(env.Out), timing, frametime)
	for {
		if err := p.Play(ctx); err != nil {
			return err
		}
		if !params.Loop {
			return nil
		}
		slog.Debug("looping")
	}
}

func chooseTiming(c *container.Container, params *Params, env Env) player.Timing {
	switch {
	case !c.HasAudio:
		return player.FallbackTiming()
	case params.NoAudio:
		slog.Debug("audio track ignored")
		return player.FallbackTiming()
	case env.OpenAudio == nil:
		common.Warn(env.Stderr, "%v, playing without sound", audio.ErrUnavailable)
		return player.FallbackTiming()
	}
	data := c.Audio
	return player.AudioTiming(func() (player.Track, error) {
		return env.OpenAudio(data)
	})
}

// warnIfTooSmall compares the first frame with the terminal size.
func warnIfTooSmall(c *container.Container, env Env) {
	if c.Frames.Len() == 0 {
		return
	}
	cols, rows, ok := screen.Size(env.Out)
	if !ok {
		return
	}
	frame, err := c.Frames.Decode(0)
	if err != nil {
		// playback will report it
		return
	}
	if w, h := container.Measure(frame); w > cols || h > rows {
		common.Warn(env.Stderr, "frames are %dx%d but the terminal is %dx%d, output will be garbled", w, h, cols, rows)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

