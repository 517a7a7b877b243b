// Package config provides configuration loading for the Quectel 5G tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts "5s" style values in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the application configuration.
type Config struct {
	Modem   ModemConfig   `yaml:"modem"`
	Monitor MonitorConfig `yaml:"monitor"`
	Bands   BandsConfig   `yaml:"bands"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ModemConfig holds serial connection settings.
type ModemConfig struct {
	// Device is the AT command port. Empty means auto-detect.
	Device string `yaml:"device"`

	// BaudRate for the serial port
	BaudRate int `yaml:"baud_rate"`

	// Timeout for a single AT command exchange
	Timeout Duration `yaml:"timeout"`
}

// MonitorConfig holds the polling loop settings.
type MonitorConfig struct {
	// RefreshInterval is how often to poll the modem
	RefreshInterval Duration `yaml:"refresh_interval"`

	// BeepsEnabled rings the terminal bell according to the 5G SINR
	BeepsEnabled bool `yaml:"beeps_enabled"`
}

// BandsConfig holds band lock preferences applied with "bands set".
type BandsConfig struct {
	LTE []int `yaml:"lte"`
	NR  []int `yaml:"nr5g"`
}

// MetricsConfig holds Prometheus exporter settings.
type MetricsConfig struct {
	// Port to serve metrics on
	Port int `yaml:"port"`

	// Path for the metrics endpoint
	Path string `yaml:"path"`

	// ScrapeTimeout bounds one full poll cycle behind a scrape. A cycle is
	// several AT command exchanges, so this is larger than Modem.Timeout.
	ScrapeTimeout Duration `yaml:"scrape_timeout"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Modem: ModemConfig{
			Device:   "/dev/ttyUSB2",
			BaudRate: 115200,
			Timeout:  Duration(5 * time.Second),
		},
		Monitor: MonitorConfig{
			RefreshInterval: Duration(5 * time.Second),
			BeepsEnabled:    true,
		},
		Metrics: MetricsConfig{
			Port:          9190,
			Path:          "/metrics",
			ScrapeTimeout: Duration(15 * time.Second),
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// no path is given or the file does not exist. Environment overrides are
// applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	fromEnv(&cfg)
	return &cfg, nil
}

// fromEnv overlays QUECTEL_* environment variables onto the config.
func fromEnv(cfg *Config) {
	if device := os.Getenv("QUECTEL_DEVICE"); device != "" {
		cfg.Modem.Device = device
	}
	if baud := os.Getenv("QUECTEL_BAUD_RATE"); baud != "" {
		if b, err := strconv.Atoi(baud); err == nil {
			cfg.Modem.BaudRate = b
		}
	}
	if timeout := os.Getenv("QUECTEL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Modem.Timeout = Duration(d)
		}
	}
	if interval := os.Getenv("QUECTEL_REFRESH_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Monitor.RefreshInterval = Duration(d)
		}
	}
	if beeps := os.Getenv("QUECTEL_BEEPS"); beeps != "" {
		if b, err := strconv.ParseBool(beeps); err == nil {
			cfg.Monitor.BeepsEnabled = b
		}
	}
	if port := os.Getenv("QUECTEL_METRICS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Metrics.Port = p
		}
	}
	if timeout := os.Getenv("QUECTEL_SCRAPE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Metrics.ScrapeTimeout = Duration(d)
		}
	}
}
