package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gigurra/bapple/cmd/play/player"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func silentWAV(t *testing.T, rate beep.SampleRate, d time.Duration) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(rate.N(d)), format); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav header", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatWAV},
		{"riff but not wave", []byte("RIFF\x24\x00\x00\x00AVI LIST"), FormatMP3},
		{"id3 tag", []byte("ID3\x03\x00\x00\x00\x00\x00\x00"), FormatMP3},
		{"too short", []byte("RIFF"), FormatMP3},
		{"empty", nil, FormatMP3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProbe_WAV(t *testing.T) {
	data := silentWAV(t, 8000, 2*time.Second)

	info, err := Probe(data)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Format != FormatWAV {
		t.Errorf("expected wav, got %q", info.Format)
	}
	if info.SampleRate != 8000 {
		t.Errorf("expected 8000 Hz, got %d", info.SampleRate)
	}
	if info.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", info.Channels)
	}
	if info.Duration != 2*time.Second {
		t.Errorf("expected 2s, got %v", info.Duration)
	}
}

func TestProbe_Garbage(t *testing.T) {
	if _, err := Probe([]byte("this is not audio at all")); err == nil {
		t.Error("expected error for undecodable audio")
	}
}

func TestProbe_EmptyWAVHasNoDuration(t *testing.T) {
	data := silentWAV(t, 8000, 0)
	if _, err := Probe(data); !errors.Is(err, player.ErrUnknownDuration) {
		t.Errorf("expected player.ErrUnknownDuration for zero-length track, got %v", err)
	}
}

// Open feeds the player's audio timing directly.
var _ func([]byte) (player.Track, error) = Open
