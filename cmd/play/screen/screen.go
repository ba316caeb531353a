package screen

import (
	"bufio"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	clearSeq      = "\r\033[2J\033[H"
	homeSeq       = "\033[H"
	hideCursorSeq = "\033[?25l"
	showCursorSeq = "\033[?25h"
)

// Screen draws frames by moving the cursor home and overwriting what is
// there. The screen is only cleared on request, never per frame.
type Screen struct {
	mu     sync.Mutex
	w      *bufio.Writer
	hidden bool
}

// New returns a Screen writing to w.
func New(w io.Writer) *Screen {
	return &Screen{w: bufio.NewWriterSize(w, 64*1024)}
}

func (s *Screen) emit(seq string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.WriteString(seq); err != nil {
		return err
	}
	if payload != nil {
		if _, err := s.w.Write(payload); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// Clear wipes the screen and homes the cursor.
func (s *Screen) Clear() error {
	return s.emit(clearSeq, nil)
}

// Draw overwrites the screen with frame, starting at the top-left corner.
func (s *Screen) Draw(frame []byte) error {
	return s.emit(homeSeq, frame)
}

// HideCursor hides the cursor and returns a function that shows it again.
// The returned function is safe to defer and does nothing if the cursor was
// already shown through ShowCursor.
func (s *Screen) HideCursor() (restore func(), err error) {
	if err := s.emit(hideCursorSeq, nil); err != nil {
		return func() {}, err
	}
	s.mu.Lock()
	s.hidden = true
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		hidden := s.hidden
		s.mu.Unlock()
		if hidden {
			_ = s.ShowCursor()
		}
	}, nil
}

// ShowCursor makes the cursor visible.
func (s *Screen) ShowCursor() error {
	s.mu.Lock()
	s.hidden = false
	s.mu.Unlock()
	return s.emit(showCursorSeq, nil)
}

// Size reports the terminal dimensions of f. ok is false when f is not a terminal.
func Size(f *os.File) (cols, rows int, ok bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}
