//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpOpenVideo,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpOpenVideo,
			err:      errors.New("no such file or directory"),
			expected: "Failed to open video: no such file or directory",
		},
		{
			name:     "frame read",
			op:       OpReadFrame,
			err:      errors.New("no frame"),
			expected: "Failed to read frame: no frame",
		},
		{
			name:     "config",
			op:       OpLoadConfig,
			err:      errors.New("decode_width 4: must be at least 16"),
			expected: "Failed to load configuration: decode_width 4: must be at least 16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpOpenVideo,
			context:  "clip.mp4",
			err:      nil,
			expected: "",
		},
		{
			name:     "includes context",
			op:       OpOpenVideo,
			context:  "clip.mp4",
			err:      errors.New("ffmpeg not found"),
			expected: "Failed to open video 'clip.mp4': ffmpeg not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpProbeVideo,
			context:  "",
			err:      errors.New("exit status 1"),
			expected: "Failed to probe video: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}
