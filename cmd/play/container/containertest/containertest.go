// Package containertest builds .bapple containers for tests.
package containertest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/mholt/archives"
)

// Entry is one file in a test container.
type Entry struct {
	Name    string
	Content []byte
}

// Compress zstd-compresses a frame the way containers store them.
func Compress(t testing.TB, frame []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(frame, nil)
}

// Frames returns n compressed frame entries named frame0000 and up, each
// holding the text "frame <i>".
func Frames(t testing.TB, n int) []Entry {
	t.Helper()
	entries := make([]Entry, n)
	for i := range n {
		entries[i] = Entry{
			Name:    fmt.Sprintf("frame%04d.zst", i),
			Content: Compress(t, []byte(fmt.Sprintf("frame %d", i))),
		}
	}
	return entries
}

// Metadata returns a metadata entry in tuple-struct notation.
func Metadata(frametime, fps uint64) Entry {
	return Entry{
		Name:    "metadata.ron",
		Content: []byte(fmt.Sprintf("(frametime: %d, fps: %d)", frametime, fps)),
	}
}

// Write creates an archive at path holding entries in the given order.
func Write(t testing.TB, path string, format archives.Archiver, entries ...Entry) {
	t.Helper()
	ctx := context.Background()
	staging := t.TempDir()

	var files []archives.FileInfo
	for i, e := range entries {
		dir := filepath.Join(staging, fmt.Sprintf("%04d", i))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		src := filepath.Join(dir, filepath.Base(e.Name))
		if err := os.WriteFile(src, e.Content, 0644); err != nil {
			t.Fatal(err)
		}
		// one call per entry keeps archive order deterministic
		found, err := archives.FilesFromDisk(ctx, nil, map[string]string{src: e.Name})
		if err != nil {
			t.Fatalf("collect %s: %v", e.Name, err)
		}
		files = append(files, found...)
	}

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	if err := format.Archive(ctx, out, files); err != nil {
		t.Fatalf("write archive: %v", err)
	}
}

// WriteTar is Write with a plain tar archive.
func WriteTar(t testing.TB, path string, entries ...Entry) {
	t.Helper()
	Write(t, path, archives.Tar{}, entries...)
}
