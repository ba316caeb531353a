//go:build !((linux && cgo) || windows || darwin)

package audio

import "github.com/gigurra/bapple/cmd/play/player"

// Available indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const Available = false

// Open always fails when cgo is disabled.
func Open(data []byte) (player.Track, error) {
	return nil, ErrUnavailable
}
