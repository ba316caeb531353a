package container

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Metadata is the optional timing record stored in a container.
type Metadata struct {
	Frametime uint64 `yaml:"frametime"` // microseconds, preferred
	// Deprecated: use Frametime. Only consulted when Frametime is zero.
	FPS uint64 `yaml:"fps"`
}

// Duration returns the frame interval the metadata describes, or zero when it
// describes none.
func (m Metadata) Duration() time.Duration {
	switch {
	case m.Frametime != 0:
		return time.Duration(m.Frametime) * time.Microsecond
	case m.FPS != 0:
		return time.Duration(1_000_000/m.FPS) * time.Microsecond
	default:
		return 0
	}
}

var (
	structName    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*\(`)
	trailingComma = regexp.MustCompile(`,\s*}$`)
)

// ParseMetadata decodes a metadata record. Tuple-struct notation such as
// `(frametime: 33333, fps: 0)` or `Metadata(frametime: 33333)` is accepted,
// as are plain YAML and JSON maps.
func ParseMetadata(data []byte) (Metadata, error) {
	src := strings.TrimSpace(string(data))
	if loc := structName.FindStringIndex(src); loc != nil {
		src = src[loc[1]-1:]
	}
	if strings.HasPrefix(src, "(") && strings.HasSuffix(src, ")") {
		src = "{" + src[1:len(src)-1] + "}"
		src = trailingComma.ReplaceAllString(src, "}")
	}

	var m Metadata
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		return Metadata{}, fmt.Errorf("invalid metadata: %w", err)
	}
	return m, nil
}
