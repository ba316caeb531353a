package audio

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gigurra/bapple/cmd/play/player"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

var ErrUnavailable = errors.New("audio playback is not available in this build")

// Format is the encoding of an audio track.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// Info describes an audio track without playing it.
type Info struct {
	Format     Format
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// Detect guesses the track format from its header. Anything that is not a
// RIFF/WAVE file is treated as MP3.
func Detect(data []byte) Format {
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return FormatWAV
	}
	return FormatMP3
}

// Probe decodes the track header and reports its format and length.
func Probe(data []byte) (Info, error) {
	streamer, format, kind, err := decode(data)
	if err != nil {
		return Info{}, err
	}
	defer streamer.Close()

	if streamer.Len() <= 0 {
		return Info{}, player.ErrUnknownDuration
	}
	return Info{
		Format:     kind,
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		Duration:   format.SampleRate.D(streamer.Len()),
	}, nil
}

func decode(data []byte) (beep.StreamSeekCloser, beep.Format, Format, error) {
	kind := Detect(data)
	reader := bytes.NewReader(data)

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch kind {
	case FormatWAV:
		streamer, format, err = wav.Decode(reader)
	default:
		streamer, format, err = mp3.Decode(nopCloser{reader})
	}
	if err != nil {
		return nil, beep.Format{}, kind, fmt.Errorf("cannot decode %s audio: %w", kind, err)
	}
	return streamer, format, kind, nil
}

// nopCloser wraps a bytes.Reader to implement io.ReadCloser.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
