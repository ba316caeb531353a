package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type windowsChecker struct{}

// Default returns the checker for this platform.
func Default() Checker {
	return windowsChecker{}
}

func (windowsChecker) AudioWarnings() []string {
	return nil
}

// EnableTerminal switches the console to virtual terminal processing so the
// cursor control sequences are interpreted instead of printed.
func (windowsChecker) EnableTerminal() error {
	handle, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return fmt.Errorf("cannot get console handle: %w", err)
	}
	if handle == windows.InvalidHandle {
		return fmt.Errorf("cannot get console handle")
	}
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		// not a console, nothing to enable
		return nil
	}
	if err := windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return fmt.Errorf("failed to enable virtual terminal processing: %w", err)
	}
	return nil
}
