package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Database  DatabaseConfig   `yaml:"database"`
	Tracking  TrackingConfig   `yaml:"tracking"`
	Employees []EmployeeConfig `yaml:"employees"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// TrackingConfig holds the tracking-code settings and the intake defaults
// applied to blank form fields.
type TrackingConfig struct {
	BaseTrackURL       string `yaml:"base_track_url"`
	QRDir              string `yaml:"qr_dir"`
	DefaultDropOffSite string `yaml:"default_dropoff_site"`
	DefaultHazardClass string `yaml:"default_hazard_class"`
	DefaultStatus      string `yaml:"default_status"`
}

// EmployeeConfig describes one staff record seeded into the employee table
// at startup.
type EmployeeConfig struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Role     string `yaml:"role"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Tracking.BaseTrackURL == "" {
		cfg.Tracking.BaseTrackURL = fmt.Sprintf("http://localhost:%d/track/", cfg.Server.Port)
	}
	// The MAC address is appended directly, so the prefix must end with a
	// path separator.
	if !strings.HasSuffix(cfg.Tracking.BaseTrackURL, "/") {
		cfg.Tracking.BaseTrackURL += "/"
	}
	if cfg.Tracking.QRDir == "" {
		cfg.Tracking.QRDir = "./qr_codes"
	}
	if cfg.Tracking.DefaultDropOffSite == "" {
		cfg.Tracking.DefaultDropOffSite = "Main Facility"
	}
	if cfg.Tracking.DefaultHazardClass == "" {
		cfg.Tracking.DefaultHazardClass = "Medium"
	}
	if cfg.Tracking.DefaultStatus == "" {
		cfg.Tracking.DefaultStatus = "Received"
	}

	return &cfg, nil
}
