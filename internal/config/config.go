package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to reach the extractor service
// and to run its polling loop.
type Config struct {
	API    APIConfig
	Poll   PollConfig
	Export ExportConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PollConfig struct {
	// Interval is the delay between the end of one poll and the start of
	// the next.
	Interval time.Duration
	// MaxWatch caps how long a single job is watched before the client
	// gives up and marks its view stale. Zero disables the cap.
	MaxWatch time.Duration
}

type ExportConfig struct {
	OutputDir string
}

// Load reads configuration from an optional config.yaml and from the
// environment. Environment variables win over the file.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	_ = viper.BindEnv("api.base_url", "EMLAK_API_BASE_URL")
	_ = viper.BindEnv("api.timeout", "EMLAK_API_TIMEOUT")
	_ = viper.BindEnv("poll.interval", "EMLAK_POLL_INTERVAL")
	_ = viper.BindEnv("poll.max_watch", "EMLAK_POLL_MAX_WATCH")
	_ = viper.BindEnv("export.output_dir", "EMLAK_EXPORT_DIR")

	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("poll.interval", "3s")
	viper.SetDefault("poll.max_watch", "30m")
	viper.SetDefault("export.output_dir", "./exports")

	// Config file is optional.
	_ = viper.ReadInConfig()

	cfg := &Config{
		API: APIConfig{
			BaseURL: viper.GetString("api.base_url"),
			Timeout: viper.GetDuration("api.timeout"),
		},
		Poll: PollConfig{
			Interval: viper.GetDuration("poll.interval"),
			MaxWatch: viper.GetDuration("poll.max_watch"),
		},
		Export: ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url must not be empty")
	}
	if cfg.Poll.Interval <= 0 {
		return nil, fmt.Errorf("poll.interval must be positive, got %s", cfg.Poll.Interval)
	}
	return cfg, nil
}
