package player

import "time"

// Timing sets up the timing reference for one playback pass. The returned
// release function ends whatever the reference keeps running and is called
// when the pass is over, however it ends.
type Timing func(frametime time.Duration, length int) (ref Reference, release func(), err error)

// FallbackTiming paces playback with a fresh FallbackClock per pass.
func FallbackTiming() Timing {
	return func(frametime time.Duration, length int) (Reference, func(), error) {
		c := NewFallbackClock(frametime, length)
		c.Start()
		return c, c.Stop, nil
	}
}

// AudioTiming paces playback with the position of the track returned by open.
// The track is opened at the start of each pass and stays open until the pass
// ends, since closing it stops the sound.
func AudioTiming(open func() (Track, error)) Timing {
	return func(_ time.Duration, length int) (Reference, func(), error) {
		track, err := open()
		if err != nil {
			return nil, nil, err
		}
		ref, err := NewAudioReference(track, length)
		if err != nil {
			_ = track.Close()
			return nil, nil, err
		}
		return ref, func() { _ = track.Close() }, nil
	}
}
