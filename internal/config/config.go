package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/light-detector/pkg/detect"
)

// Config holds the application configuration
type Config struct {
	Detection detect.Config `json:"detection"`
	Camera    CameraConfig  `json:"camera"`
	Server    ServerConfig  `json:"server"`
}

// CameraConfig holds configuration for frame acquisition and polling
type CameraConfig struct {
	// Source is an image file or a directory of images used as the frame
	// source. A directory is looped in sorted order.
	Source string `json:"source"`

	// IntervalSeconds is the background monitor's polling cadence.
	IntervalSeconds float64 `json:"interval_seconds"`

	// ErrorBackoffSeconds is how long the monitor waits after a failed
	// capture or analysis before trying again.
	ErrorBackoffSeconds float64 `json:"error_backoff_seconds"`
}

// ServerConfig holds configuration for the HTTP API
type ServerConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	StreamQuality int    `json:"stream_quality"`
	DebugMode     bool   `json:"debug_mode"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Detection: detect.DefaultConfig(),
		Camera: CameraConfig{
			IntervalSeconds:     1,
			ErrorBackoffSeconds: 2,
		},
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          5000,
			StreamQuality: 80,
			DebugMode:     true,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	d := c.Detection

	for name, w := range map[string]float64{
		"detection.brightness_weight": d.BrightnessWeight,
		"detection.area_weight":       d.AreaWeight,
		"detection.contour_weight":    d.ContourWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}

	if d.OnThreshold <= d.PartialThreshold {
		return fmt.Errorf("detection.on_threshold must be greater than detection.partial_threshold")
	}
	if d.PartialThreshold < 0 || d.OnThreshold > 1 {
		return fmt.Errorf("detection thresholds must lie within [0,1]")
	}

	if d.MinContourArea < 0 {
		return fmt.Errorf("detection.min_contour_area must not be negative")
	}
	if d.ContourNorm <= 0 {
		return fmt.Errorf("detection.contour_norm must be positive")
	}
	if d.HistorySize < 1 {
		return fmt.Errorf("detection.history_size must be at least 1")
	}
	if d.Bulb.MinAspectRatio > d.Bulb.MaxAspectRatio {
		return fmt.Errorf("detection.bulb aspect ratio bounds are inverted")
	}

	if c.Camera.IntervalSeconds <= 0 {
		return fmt.Errorf("camera.interval_seconds must be positive")
	}
	if c.Camera.ErrorBackoffSeconds < 0 {
		return fmt.Errorf("camera.error_backoff_seconds must not be negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.StreamQuality < 1 || c.Server.StreamQuality > 100 {
		return fmt.Errorf("server.stream_quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "light-detector", "config.json")
}
