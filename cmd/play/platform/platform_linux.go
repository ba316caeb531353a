package platform

import (
	"fmt"
	"os"
)

const alsaConfDir = "/etc/alsa/conf.d"

type linuxChecker struct {
	alsaConfDir string
}

// Default returns the checker for this platform.
func Default() Checker {
	return linuxChecker{alsaConfDir: alsaConfDir}
}

// AudioWarnings reports a missing ALSA configuration directory, which on many
// distributions means the PulseAudio/PipeWire plugin is not set up and the
// default device will fail or stutter.
func (c linuxChecker) AudioWarnings() []string {
	if _, err := os.Stat(c.alsaConfDir); err == nil {
		return nil
	}
	return []string{fmt.Sprintf(
		"%s does not exist, ALSA may not be routed to your sound server. "+
			"If there is no sound, install the ALSA plugin for PulseAudio or PipeWire.",
		c.alsaConfDir,
	)}
}

func (linuxChecker) EnableTerminal() error {
	return nil
}
