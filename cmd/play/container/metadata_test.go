package container

import (
	"testing"
	"time"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		input     string
		want      Metadata
		expectErr bool
	}{
		{"(frametime: 33333, fps: 0)", Metadata{Frametime: 33333}, false},
		{"(frametime: 33333, fps: 0,)", Metadata{Frametime: 33333}, false},
		{"Metadata(frametime: 1000)", Metadata{Frametime: 1000}, false},
		{"(fps: 30)", Metadata{FPS: 30}, false},
		{"  (\n  frametime: 20000,\n  fps: 50,\n)\n", Metadata{Frametime: 20000, FPS: 50}, false},
		{"frametime: 41666\n", Metadata{Frametime: 41666}, false},
		{`{"frametime": 16666, "fps": 60}`, Metadata{Frametime: 16666, FPS: 60}, false},
		{"", Metadata{}, false},
		{"(frametime: -1)", Metadata{}, true},
		{"(frametime: lots)", Metadata{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetadata([]byte(tt.input))
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMetadata(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetadata_Duration(t *testing.T) {
	tests := []struct {
		m    Metadata
		want time.Duration
	}{
		{Metadata{Frametime: 33333}, 33333 * time.Microsecond},
		{Metadata{Frametime: 33333, FPS: 10}, 33333 * time.Microsecond},
		{Metadata{FPS: 30}, 33333 * time.Microsecond},
		{Metadata{FPS: 3_000_000}, 0},
		{Metadata{}, 0},
	}
	for _, tt := range tests {
		if got := tt.m.Duration(); got != tt.want {
			t.Errorf("%+v.Duration() = %v, want %v", tt.m, got, tt.want)
		}
	}
}
