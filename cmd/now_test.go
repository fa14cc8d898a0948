package cmd

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/mielsense/nowplaying/pkg/lastfm"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語... ", // 日本語 is 6 columns, ... is 3, one space of padding
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
		{
			name:     "width smaller than ellipsis",
			input:    "Hello",
			width:    2,
			expected: "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			// Verify the result has the expected display width (if width > 0)
			if tt.width > 0 {
				resultWidth := runewidth.StringWidth(result)
				if resultWidth != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}

func TestMarqueeText(t *testing.T) {
	text := "Boards of Canada - Roygbiv"
	sep := " | "

	t.Run("short text is padded", func(t *testing.T) {
		got := marqueeText("Short", 10, 2, sep, time.Unix(0, 0))
		if got != "Short     " {
			t.Errorf("expected padded text, got %q", got)
		}
	})

	t.Run("starts at the beginning at time zero", func(t *testing.T) {
		got := marqueeText(text, 10, 2, sep, time.Unix(0, 0))
		if got != "Boards of " {
			t.Errorf("expected %q, got %q", "Boards of ", got)
		}
	})

	t.Run("advances by speed per second", func(t *testing.T) {
		got := marqueeText(text, 10, 2, sep, time.Unix(3, 0))
		if got != " of Canada" {
			t.Errorf("expected %q, got %q", " of Canada", got)
		}
	})

	t.Run("wraps through the separator", func(t *testing.T) {
		// len(text+sep) = 29; offset 24 shows the tail, the separator and the head
		got := marqueeText(text, 10, 1, sep, time.Unix(24, 0))
		if got != "iv | Board" {
			t.Errorf("expected %q, got %q", "iv | Board", got)
		}
	})

	t.Run("always exact width", func(t *testing.T) {
		for sec := int64(0); sec < 40; sec++ {
			got := marqueeText("日本語とても長いテキスト", 9, 1, sep, time.Unix(sec, 0))
			if w := runewidth.StringWidth(got); w != 9 {
				t.Fatalf("at %ds produced width %d (%q)", sec, w, got)
			}
		}
	})

	t.Run("disabled width", func(t *testing.T) {
		if got := marqueeText(text, 0, 1, sep, time.Unix(5, 0)); got != text {
			t.Errorf("expected unchanged text, got %q", got)
		}
	})
}

func TestFormatTrack(t *testing.T) {
	track := &lastfm.RecentTrack{
		Name:   "Roygbiv",
		Artist: "Boards of Canada",
		Album:  "Music Has the Right to Children",
		Images: []lastfm.Image{{Size: "large", URL: "https://img.example/l.jpg"}},
	}

	tests := []struct {
		name     string
		format   string
		expected string
		wantErr  bool
	}{
		{"default", "{{.Artist}} - {{.Name}}", "Boards of Canada - Roygbiv", false},
		{"album", "{{.Name}} ({{.Album}})", "Roygbiv (Music Has the Right to Children)", false},
		{"image method", `{{.Image "large"}}`, "https://img.example/l.jpg", false},
		{"invalid template", "{{.Name", "", true},
		{"unknown field", "{{.Nope}}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatTrack(track, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
