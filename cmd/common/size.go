package common

import "fmt"

const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// FormatSize renders a byte count with a binary unit suffix.
func FormatSize(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%.1fG", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.1fM", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.1fK", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
