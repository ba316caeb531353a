package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/bapple/cmd/common"
	"github.com/gigurra/bapple/cmd/play/audio"
	"github.com/gigurra/bapple/cmd/play/container"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type Params struct {
	File     string `pos:"true" help:"Path to a .bapple file."`
	Password string `short:"p" optional:"true" help:"Password for encrypted files (zip, 7z, rar)."`
	JSON     bool   `optional:"true" help:"Output as JSON"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "info",
		Short:       "Show what a .bapple file contains",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(cmd.Context(), params, os.Stdout); err != nil {
				common.Fail(os.Stderr, "bapple info", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Summary describes a container without playing it.
type Summary struct {
	File           string        `json:"file"`
	Frames         int           `json:"frames"`
	CompressedSize int64         `json:"compressed_size"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Frametime      time.Duration `json:"frametime"`
	FPS            float64       `json:"fps"`
	Duration       time.Duration `json:"duration"`
	HasAudio       bool          `json:"has_audio"`
	Audio          *AudioSummary `json:"audio,omitempty"`
}

type AudioSummary struct {
	Format     audio.Format  `json:"format"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

func Run(ctx context.Context, params *Params, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := Summarize(ctx, params.File, container.Options{Password: params.Password})
	if err != nil {
		return err
	}

	if params.JSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	render(s, out)
	return nil
}

// Summarize loads the container at path and collects its properties. A track
// that cannot be decoded is reported in the summary instead of failing.
func Summarize(ctx context.Context, path string, opts container.Options) (Summary, error) {
	c, err := container.Load(ctx, path, opts)
	if err != nil {
		return Summary{}, err
	}
	defer c.Close()

	s := Summary{
		File:           path,
		Frames:         c.Frames.Len(),
		CompressedSize: c.Frames.CompressedSize(),
		Frametime:      c.Frametime,
		HasAudio:       c.HasAudio,
	}
	if c.Frametime > 0 {
		s.FPS = float64(time.Second) / float64(c.Frametime)
		s.Duration = c.Frametime * time.Duration(s.Frames)
	}
	if s.Frames > 0 {
		frame, err := c.Frames.Decode(0)
		if err != nil {
			return Summary{}, err
		}
		s.Width, s.Height = container.Measure(frame)
	}

	if c.HasAudio {
		s.Audio = &AudioSummary{Format: audio.Detect(c.Audio)}
		if a, err := audio.Probe(c.Audio); err != nil {
			s.Audio.Error = err.Error()
		} else {
			s.Audio.Format = a.Format
			s.Audio.SampleRate = a.SampleRate
			s.Audio.Channels = a.Channels
			s.Audio.Duration = a.Duration
		}
	}
	return s, nil
}

func render(s Summary, out io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(s.File)

	t.AppendRow(table.Row{"Frames", s.Frames})
	t.AppendRow(table.Row{"Size", common.FormatSize(s.CompressedSize)})
	if s.Width > 0 {
		t.AppendRow(table.Row{"Dimensions", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	}
	if s.Frametime > 0 {
		t.AppendRow(table.Row{"Frametime", s.Frametime})
		t.AppendRow(table.Row{"FPS", fmt.Sprintf("%.2f", s.FPS)})
		t.AppendRow(table.Row{"Duration", s.Duration.Round(time.Millisecond)})
	} else {
		t.AppendRow(table.Row{"Frametime", text.FgYellow.Sprint("not set, pass an fps to play")})
	}

	switch {
	case s.Audio == nil:
		t.AppendRow(table.Row{"Audio", "none"})
	case s.Audio.Error != "":
		t.AppendRow(table.Row{"Audio", text.FgRed.Sprintf("%s (%s)", s.Audio.Format, s.Audio.Error)})
	default:
		t.AppendRow(table.Row{"Audio", fmt.Sprintf("%s, %d Hz, %d ch, %v",
			s.Audio.Format, s.Audio.SampleRate, s.Audio.Channels, s.Audio.Duration.Round(time.Millisecond))})
	}

	t.Render()
}
