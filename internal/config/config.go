package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultUsername is the Last.fm account whose listening is shown.
const DefaultUsername = "mielsense"

// Config holds application configuration
type Config struct {
	// Output format template for the now command
	// Default: "{{.Artist}} - {{.Name}}"
	OutputFormat string

	// Fixed output width for the now command (0 disables padding)
	OutputWidth int

	// Marquee scrolling for the now command when OutputWidth is set
	MarqueeEnabled   bool
	MarqueeSpeed     int
	MarqueeSeparator string

	// Poll interval for serve and watch (in seconds)
	PollInterval int

	// Last.fm API settings
	LastFM LastFMConfig

	// HTTP server settings
	Server ServerConfig
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	APIKey   string
	Username string
	BaseURL  string
}

// ServerConfig holds settings for the serve command
type ServerConfig struct {
	Addr string

	// Origins allowed to open the websocket (empty allows any)
	AllowedOrigins []string
}

// Load reads configuration from file and environment
//
// A .env file in the working directory is loaded first; variables
// already set in the environment win.
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	// Missing .env is the common case
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("output_format", "{{.Artist}} - {{.Name}}")
	v.SetDefault("output_width", 0)
	v.SetDefault("marquee_enabled", false)
	v.SetDefault("marquee_speed", 2)
	v.SetDefault("marquee_separator", " • ")
	v.SetDefault("poll_interval", 5)
	v.SetDefault("lastfm.username", DefaultUsername)
	v.SetDefault("lastfm.base_url", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("NOWPLAYING")
	v.AutomaticEnv()

	// The bare LASTFM_APIKEY name is what existing deployments export
	_ = v.BindEnv("lastfm.api_key", "NOWPLAYING_LASTFM_API_KEY", "LASTFM_APIKEY")
	_ = v.BindEnv("lastfm.username", "NOWPLAYING_LASTFM_USERNAME")
	_ = v.BindEnv("lastfm.base_url", "NOWPLAYING_LASTFM_BASE_URL")
	_ = v.BindEnv("server.addr", "NOWPLAYING_SERVER_ADDR")
	_ = v.BindEnv("server.allowed_origins", "NOWPLAYING_SERVER_ALLOWED_ORIGINS")

	// Map config to struct
	cfg := &Config{
		OutputFormat:     v.GetString("output_format"),
		OutputWidth:      v.GetInt("output_width"),
		MarqueeEnabled:   v.GetBool("marquee_enabled"),
		MarqueeSpeed:     v.GetInt("marquee_speed"),
		MarqueeSeparator: v.GetString("marquee_separator"),
		PollInterval:     v.GetInt("poll_interval"),
		LastFM: LastFMConfig{
			APIKey:   v.GetString("lastfm.api_key"),
			Username: v.GetString("lastfm.username"),
			BaseURL:  v.GetString("lastfm.base_url"),
		},
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "nowplaying")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
