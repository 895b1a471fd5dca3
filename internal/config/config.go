package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"check-snmp-lsi-raid/internal/snmp"
	"check-snmp-lsi-raid/internal/statistic"
	"check-snmp-lsi-raid/pkg/types"
)

// ErrInvalidConfig is returned by Validate and LoadFile
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of one check run
type Config struct {
	Host        string
	Port        uint16
	Community   string
	Statistic   string
	Warning     *int64
	Critical    *int64
	SNMPVersion string
	Timeout     time.Duration
	Debug       bool
	LogLevel    string
	MetricsFile string
}

// fileConfig is the YAML layout read by LoadFile. Unset keys keep the
// current value.
type fileConfig struct {
	Host        *string `yaml:"host"`
	Port        *uint16 `yaml:"port"`
	Community   *string `yaml:"community"`
	Statistic   *string `yaml:"statistic"`
	Warning     *int64  `yaml:"warning"`
	Critical    *int64  `yaml:"critical"`
	SNMPVersion *string `yaml:"snmp_version"`
	Timeout     *string `yaml:"timeout"`
	Debug       *bool   `yaml:"debug"`
	LogLevel    *string `yaml:"log_level"`
	MetricsFile *string `yaml:"metrics_file"`
}

// New creates a new configuration with default values, overridden by
// environment variables
func New() *Config {
	return &Config{
		Host:        getEnv("LSI_RAID_HOST", "127.0.0.1"),
		Port:        getEnvPort("LSI_RAID_PORT", 161),
		Community:   getEnv("LSI_RAID_COMMUNITY", "public"),
		Statistic:   getEnv("LSI_RAID_STATISTIC", ""),
		SNMPVersion: getEnv("LSI_RAID_SNMP_VERSION", snmp.VersionV2c),
		Timeout:     getEnvDuration("LSI_RAID_TIMEOUT", 1*time.Second),
		LogLevel:    getEnv("LSI_RAID_LOG_LEVEL", "warn"),
		MetricsFile: getEnv("LSI_RAID_METRICS_FILE", ""),
	}
}

// LoadFile overlays the settings found in a YAML file
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	setString(&c.Host, fc.Host)
	setString(&c.Community, fc.Community)
	setString(&c.Statistic, fc.Statistic)
	setString(&c.SNMPVersion, fc.SNMPVersion)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.MetricsFile, fc.MetricsFile)
	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.Warning != nil {
		c.Warning = fc.Warning
	}
	if fc.Critical != nil {
		c.Critical = fc.Critical
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.Timeout != nil {
		d, ok := parseDuration(*fc.Timeout)
		if !ok {
			return fmt.Errorf("%w: timeout %q", ErrInvalidConfig, *fc.Timeout)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the configuration before any network traffic
func (c *Config) Validate() error {
	if _, err := statistic.Parse(c.Statistic); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := snmp.ParseVersion(c.SNMPVersion); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Host == "" {
		return fmt.Errorf("%w: host is empty", ErrInvalidConfig)
	}
	if c.Port == 0 {
		return fmt.Errorf("%w: port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Thresholds returns the warning/critical pair
func (c *Config) Thresholds() types.Thresholds {
	return types.Thresholds{Warning: c.Warning, Critical: c.Critical}
}

// SNMPOptions returns the transport settings
func (c *Config) SNMPOptions() snmp.Options {
	return snmp.Options{
		Host:      c.Host,
		Port:      c.Port,
		Community: c.Community,
		Version:   c.SNMPVersion,
		Timeout:   c.Timeout,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvPort gets a port environment variable with a default value
func getEnvPort(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		if port, err := strconv.ParseUint(value, 10, 16); err == nil && port > 0 {
			return uint16(port)
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, ok := parseDuration(value); ok {
			return d
		}
	}
	return defaultValue
}

// parseDuration accepts a Go duration or a number of seconds
func parseDuration(value string) (time.Duration, bool) {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration, true
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, true
	}
	return 0, false
}
