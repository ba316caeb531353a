package platform

// Checker performs the OS specific preparation a playback pass needs.
// Each platform provides its own implementation through Default.
type Checker interface {
	// AudioWarnings lists problems with the audio output setup that the user
	// should know about before playback starts.
	AudioWarnings() []string
	// EnableTerminal makes stdout understand ANSI escape sequences.
	EnableTerminal() error
}
