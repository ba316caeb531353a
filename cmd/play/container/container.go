package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/mholt/archives"
	"github.com/yeka/zip"
)

const (
	audioStem    = "audio"
	metadataStem = "metadata"
)

var ErrNotArchive = errors.New("not an archive")

// Container is a loaded .bapple file: frames plus the optional audio track and
// timing metadata.
type Container struct {
	Frames *Frames

	// Audio is the raw track. Only meaningful when HasAudio is set.
	Audio    []byte
	HasAudio bool

	// Metadata is the last metadata record found, HasMetadata reports whether
	// one was present at all.
	Metadata    Metadata
	HasMetadata bool

	// Frametime is the frame interval resolved from metadata, zero when the
	// container does not define one.
	Frametime time.Duration
}

// Options controls how a container is opened.
type Options struct {
	// Password for encrypted zip, 7z and rar containers.
	Password string
}

// Close releases the resources held by the frame store.
func (c *Container) Close() {
	if c.Frames != nil {
		c.Frames.Close()
	}
}

// Load reads every entry of the archive at path. Entries named audio.* and
// metadata.* are taken out; everything else becomes a frame, in archive order.
func Load(ctx context.Context, path string, opts Options) (*Container, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open container: %w", err)
	}
	defer file.Close()

	format, reader, err := archives.Identify(ctx, path, file)
	if err != nil {
		return nil, fmt.Errorf("cannot identify container format: %w", err)
	}

	b := &builder{}

	if opts.Password != "" {
		switch f := format.(type) {
		case archives.Zip:
			// yeka/zip handles both AES and legacy zip encryption
			if err := loadEncryptedZip(ctx, path, opts.Password, b); err != nil {
				return nil, err
			}
			return b.build()
		case archives.SevenZip:
			f.Password = opts.Password
			format = f
		case archives.Rar:
			f.Password = opts.Password
			format = f
		}
	}

	extractor, ok := format.(archives.Extractor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotArchive, path)
	}

	// zip and 7z need to seek, so hand them the file itself
	var archiveReader io.Reader = reader
	switch format.(type) {
	case archives.Zip, archives.SevenZip:
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("cannot rewind container: %w", err)
		}
		archiveReader = file
	}

	err = extractor.Extract(ctx, archiveReader, func(ctx context.Context, f archives.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.IsDir() {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("cannot open entry %s: %w", f.NameInArchive, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("cannot read entry %s: %w", f.NameInArchive, err)
		}
		b.add(f.NameInArchive, content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot read container: %w", err)
	}

	return b.build()
}

func loadEncryptedZip(ctx context.Context, archivePath, password string, b *builder) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("cannot open container: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if f.IsEncrypted() {
			f.SetPassword(password)
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("cannot open entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("cannot read entry %s: %w", f.Name, err)
		}
		b.add(f.Name, content)
	}
	return nil
}

// builder sorts archive entries into frames, audio and metadata.
type builder struct {
	blobs       [][]byte
	audio       []byte
	hasAudio    bool
	metadata    Metadata
	hasMetadata bool
	frametime   time.Duration
}

func (b *builder) add(name string, content []byte) {
	switch stem(name) {
	case audioStem:
		b.audio = content
		b.hasAudio = true
	case metadataStem:
		m, err := ParseMetadata(content)
		if err != nil {
			slog.Warn("ignoring unreadable metadata", "entry", name, "error", err)
		}
		b.metadata = m
		b.hasMetadata = true
		// a record without timing keeps whatever an earlier one set
		if d := m.Duration(); d != 0 {
			b.frametime = d
		}
	default:
		b.blobs = append(b.blobs, content)
	}
}

func (b *builder) build() (*Container, error) {
	frames, err := NewFrames(b.blobs)
	if err != nil {
		return nil, err
	}
	slog.Debug("container loaded", "frames", frames.Len(), "audio", b.hasAudio, "frametime", b.frametime)
	return &Container{
		Frames:      frames,
		Audio:       b.audio,
		HasAudio:    b.hasAudio,
		Metadata:    b.metadata,
		HasMetadata: b.hasMetadata,
		Frametime:   b.frametime,
	}, nil
}

// stem returns the base name of an archive entry without its extension.
func stem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if s := strings.TrimSuffix(base, path.Ext(base)); s != "" {
		return s
	}
	return base
}
