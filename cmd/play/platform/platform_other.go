//go:build !linux && !windows

package platform

type noopChecker struct{}

// Default returns the checker for this platform.
func Default() Checker {
	return noopChecker{}
}

func (noopChecker) AudioWarnings() []string { return nil }

func (noopChecker) EnableTerminal() error { return nil }
