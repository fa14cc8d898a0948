package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := setupLogger("", tt.level)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("expected level %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nowplaying.log")

	logger := setupLogger(path, "info")
	logger.Info().Str("status", "403").Msg("Failed to fetch now playing track")
	logger.Debug().Msg("hidden")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"Failed to fetch now playing track"`) {
		t.Errorf("expected JSON log line, got %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestLastfmLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	adapter := lastfmLogger{logger: setupLogger(path, "debug")}

	adapter.Debugf("lastfm: calling %s", "user.getrecenttracks")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "lastfm: calling user.getrecenttracks") {
		t.Errorf("expected formatted debug line, got %s", data)
	}
}
