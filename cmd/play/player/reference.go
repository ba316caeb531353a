package player

import (
	"errors"
	"math"
	"time"
)

var ErrUnknownDuration = errors.New("unable to determine audio duration")

// Reference is an authoritative timing source. Frame reports the index the
// render loop should continue from.
type Reference interface {
	Frame() int
}

// Track is an audio stream that is currently playing. The output keeps going
// for as long as the track is open, so it stays open for the whole pass.
type Track interface {
	// Position is how far into the track playback has come.
	Position() time.Duration
	// Duration is the total length of the track.
	Duration() time.Duration
	Close() error
}

type audioReference struct {
	track  Track
	total  time.Duration
	length int
}

// NewAudioReference maps the playback position of track onto length frames.
// The total duration is read once here and stays fixed for the pass.
func NewAudioReference(track Track, length int) (Reference, error) {
	total := track.Duration()
	if total <= 0 {
		return nil, ErrUnknownDuration
	}
	return &audioReference{track: track, total: total, length: length}, nil
}

func (r *audioReference) Frame() int {
	return FrameAt(r.track.Position(), r.total, r.length)
}

// FrameAt returns round(position/total * length), kept within [0, length].
func FrameAt(position, total time.Duration, length int) int {
	if total <= 0 || position <= 0 {
		return 0
	}
	frame := int(math.Round(float64(position) / float64(total) * float64(length)))
	return min(frame, length)
}
