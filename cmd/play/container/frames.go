package container

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/klauspost/compress/zstd"
	"github.com/samber/lo"
)

var (
	ErrFrameDecode     = errors.New("failed to decompress frame")
	ErrIndexOutOfRange = errors.New("frame index out of range")
)

// Frames holds the zstd-compressed frame payloads of a container in archive order.
// It never changes after construction. Frames are decompressed one at a time, right
// before they are shown.
type Frames struct {
	blobs   [][]byte
	decoder *zstd.Decoder
}

// NewFrames takes ownership of a copy of blobs.
func NewFrames(blobs [][]byte) (*Frames, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Frames{
		blobs:   slices.Clone(blobs),
		decoder: decoder,
	}, nil
}

// Len returns the number of frames.
func (f *Frames) Len() int {
	return len(f.blobs)
}

// Get returns the compressed payload at index i. It panics when i is out of range.
func (f *Frames) Get(i int) []byte {
	return f.blobs[i]
}

// Decode decompresses the frame at index i.
func (f *Frames) Decode(i int) ([]byte, error) {
	if i < 0 || i >= len(f.blobs) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(f.blobs))
	}
	out, err := f.decoder.DecodeAll(f.blobs[i], nil)
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrFrameDecode, i, err)
	}
	return out, nil
}

// CompressedSize is the sum of all payload sizes in bytes.
func (f *Frames) CompressedSize() int64 {
	return lo.SumBy(f.blobs, func(b []byte) int64 { return int64(len(b)) })
}

// Close releases the decoder.
func (f *Frames) Close() {
	f.decoder.Close()
}

// Measure returns the display width and height of a decompressed frame.
// Escape sequences take no columns, wide runes count as two.
func Measure(frame []byte) (cols, rows int) {
	text := strings.TrimRight(strings.ReplaceAll(string(frame), "\r\n", "\n"), "\n")
	if text == "" {
		return 0, 0
	}
	return lipgloss.Width(text), lipgloss.Height(text)
}
