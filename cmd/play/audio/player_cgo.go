//go:build (linux && cgo) || windows || darwin

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gigurra/bapple/cmd/play/player"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Available indicates whether audio playback is supported in this build.
const Available = true

const outputRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the output device once per process. Later passes reuse it.
func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	return speakerErr
}

// track plays one decoded stream through the shared speaker.
type track struct {
	mu sync.Mutex

	streamer beep.StreamSeekCloser
	format   beep.Format
	total    time.Duration
	closed   bool
}

// Open decodes data and starts playing it right away.
func Open(data []byte) (player.Track, error) {
	streamer, format, _, err := decode(data)
	if err != nil {
		return nil, err
	}
	if streamer.Len() <= 0 {
		streamer.Close()
		return nil, player.ErrUnknownDuration
	}
	if err := initSpeaker(); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("cannot open audio output: %w", err)
	}

	t := &track{
		streamer: streamer,
		format:   format,
		total:    format.SampleRate.D(streamer.Len()),
	}
	speaker.Play(beep.Resample(4, format.SampleRate, outputRate, streamer))
	return t, nil
}

func (t *track) Position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return t.total
	}

	speaker.Lock()
	pos := t.streamer.Position()
	speaker.Unlock()

	return t.format.SampleRate.D(pos)
}

func (t *track) Duration() time.Duration {
	return t.total
}

// Close stops the sound and releases the decoder.
func (t *track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	speaker.Clear()
	return t.streamer.Close()
}
