package screen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScreen_Protocol(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	restore, err := s.HideCursor()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Draw([]byte("AB\nCD")); err != nil {
		t.Fatal(err)
	}
	if err := s.Draw([]byte("EF\nGH")); err != nil {
		t.Fatal(err)
	}
	restore()

	want := clearSeq + hideCursorSeq + homeSeq + "AB\nCD" + homeSeq + "EF\nGH" + showCursorSeq
	if buf.String() != want {
		t.Errorf("unexpected output\n got: %q\nwant: %q", buf.String(), want)
	}
	if strings.Count(buf.String(), "\033[2J") != 1 {
		t.Error("screen must be cleared exactly once")
	}
}

func TestScreen_RestoreIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	restore, err := s.HideCursor()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ShowCursor(); err != nil {
		t.Fatal(err)
	}
	restore()
	restore()

	if n := strings.Count(buf.String(), showCursorSeq); n != 1 {
		t.Errorf("expected cursor to be shown once, got %d", n)
	}
}

func TestScreen_DrawFlushesEachFrame(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	if err := s.Draw([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != homeSeq+"x" {
		t.Errorf("frame not flushed, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestScreen_WriteErrors(t *testing.T) {
	s := New(failingWriter{})
	if err := s.Draw([]byte("x")); err == nil {
		t.Error("expected error from Draw")
	}
	restore, err := s.HideCursor()
	if err == nil {
		t.Error("expected error from HideCursor")
	}
	restore()
}

func TestSize_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, _, ok := Size(f); ok {
		t.Error("a regular file is not a terminal")
	}
}
