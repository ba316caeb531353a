package player

import (
	"errors"
	"math"
	"time"
)

// MinFPS is the smallest accepted frames-per-second override.
const MinFPS = 0.01

var (
	ErrFPSTooSmall         = errors.New("FPS value is too small")
	ErrFPSInvalid          = errors.New("FPS value is not a number")
	ErrFrametimeUnresolved = errors.New("frametime is zero: the file has no usable timing metadata, pass a frames-per-second value")
)

// ValidateFPS checks a frames-per-second argument. Zero means autodetect.
func ValidateFPS(fps float64) error {
	if math.IsNaN(fps) || math.IsInf(fps, 0) {
		return ErrFPSInvalid
	}
	if fps != 0 && fps < MinFPS {
		return ErrFPSTooSmall
	}
	return nil
}

// FrametimeFromFPS converts frames per second into a frame interval with
// microsecond resolution.
func FrametimeFromFPS(fps float64) time.Duration {
	return time.Duration(1_000_000/fps) * time.Microsecond
}

// ResolveFrametime picks the frame interval of a pass. A nonzero fps always
// wins over the metadata value.
func ResolveFrametime(fps float64, fromMetadata time.Duration) (time.Duration, error) {
	if err := ValidateFPS(fps); err != nil {
		return 0, err
	}
	frametime := fromMetadata
	if fps != 0 {
		frametime = FrametimeFromFPS(fps)
	}
	if frametime <= 0 {
		return 0, ErrFrametimeUnresolved
	}
	return frametime, nil
}
