package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"check-snmp-lsi-raid/internal/snmp"
	"check-snmp-lsi-raid/internal/statistic"
)

var envKeys = []string{
	"LSI_RAID_HOST",
	"LSI_RAID_PORT",
	"LSI_RAID_COMMUNITY",
	"LSI_RAID_STATISTIC",
	"LSI_RAID_SNMP_VERSION",
	"LSI_RAID_TIMEOUT",
	"LSI_RAID_LOG_LEVEL",
	"LSI_RAID_METRICS_FILE",
}

func clearEnv(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)

	config := New()

	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, uint16(161), config.Port)
	assert.Equal(t, "public", config.Community)
	assert.Equal(t, "", config.Statistic)
	assert.Equal(t, "SNMPv2c", config.SNMPVersion)
	assert.Equal(t, 1*time.Second, config.Timeout)
	assert.Equal(t, "warn", config.LogLevel)
	assert.False(t, config.Debug)
	assert.Nil(t, config.Warning)
	assert.Nil(t, config.Critical)
}

func TestConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LSI_RAID_HOST", "10.1.2.3")
	t.Setenv("LSI_RAID_PORT", "1161")
	t.Setenv("LSI_RAID_COMMUNITY", "monitor")
	t.Setenv("LSI_RAID_STATISTIC", "vd_state")
	t.Setenv("LSI_RAID_SNMP_VERSION", "SNMPv1")
	t.Setenv("LSI_RAID_TIMEOUT", "5")
	t.Setenv("LSI_RAID_METRICS_FILE", "/tmp/lsi.prom")

	config := New()

	assert.Equal(t, "10.1.2.3", config.Host)
	assert.Equal(t, uint16(1161), config.Port)
	assert.Equal(t, "monitor", config.Community)
	assert.Equal(t, "vd_state", config.Statistic)
	assert.Equal(t, "SNMPv1", config.SNMPVersion)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.Equal(t, "/tmp/lsi.prom", config.MetricsFile)
}

func TestInvalidPortFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	for _, value := range []string{"0", "70000", "snmp"} {
		t.Setenv("LSI_RAID_PORT", value)
		assert.Equal(t, uint16(161), New().Port, value)
	}
}

func TestGetEnvDuration(t *testing.T) {
	testCases := []struct {
		envValue string
		expected time.Duration
		name     string
	}{
		{"30s", 30 * time.Second, "duration string"},
		{"2", 2 * time.Second, "seconds as integer"},
		{"500ms", 500 * time.Millisecond, "milliseconds"},
		{"invalid", 1 * time.Second, "invalid value falls back to default"},
		{"", 1 * time.Second, "empty value falls back to default"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tc.envValue)

			result := getEnvDuration("TEST_DURATION", 1*time.Second)
			assert.Equal(t, tc.expected, result, "input %q", tc.envValue)
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "check.yaml")
	content := `host: raid01.example.net
community: secret
statistic: media_err_count
warning: 3
critical: 10
timeout: 3s
debug: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config := New()
	require.NoError(t, config.LoadFile(path))

	assert.Equal(t, "raid01.example.net", config.Host)
	assert.Equal(t, "secret", config.Community)
	assert.Equal(t, "media_err_count", config.Statistic)
	require.NotNil(t, config.Warning)
	require.NotNil(t, config.Critical)
	assert.Equal(t, int64(3), *config.Warning)
	assert.Equal(t, int64(10), *config.Critical)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.True(t, config.Debug)
	// untouched keys keep their defaults
	assert.Equal(t, uint16(161), config.Port)
	assert.Equal(t, "SNMPv2c", config.SNMPVersion)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := New().LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("host: [unterminated"), 0o600))
	assert.ErrorIs(t, New().LoadFile(bad), ErrInvalidConfig)

	badTimeout := filepath.Join(dir, "timeout.yaml")
	require.NoError(t, os.WriteFile(badTimeout, []byte("timeout: soon\n"), 0o600))
	assert.ErrorIs(t, New().LoadFile(badTimeout), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	valid := func() *Config {
		c := New()
		c.Statistic = "pd_state"
		return c
	}
	require.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"missing statistic", func(c *Config) { c.Statistic = "" }, statistic.ErrUnknownStatistic},
		{"unknown statistic", func(c *Config) { c.Statistic = "battery_state" }, statistic.ErrUnknownStatistic},
		{"index column", func(c *Config) { c.Statistic = "pd_index" }, statistic.ErrUnknownStatistic},
		{"bad version", func(c *Config) { c.SNMPVersion = "SNMPv3" }, snmp.ErrVersion},
		{"empty host", func(c *Config) { c.Host = "" }, ErrInvalidConfig},
		{"zero port", func(c *Config) { c.Port = 0 }, ErrInvalidConfig},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			assert.ErrorIs(t, err, tc.target)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestThresholdsAndOptions(t *testing.T) {
	clearEnv(t)
	c := New()
	w, crit := int64(2), int64(5)
	c.Warning, c.Critical = &w, &crit

	assert.True(t, c.Thresholds().Complete())
	assert.Equal(t, snmp.Options{
		Host:      "127.0.0.1",
		Port:      161,
		Community: "public",
		Version:   "SNMPv2c",
		Timeout:   time.Second,
	}, c.SNMPOptions())
}
