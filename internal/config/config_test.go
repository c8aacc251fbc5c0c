package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/satindergrewal/maitreya/internal/audio"
)

var envVars = []string{
	"MAITREYA_AUDIO_SAMPLE_RATE", "MAITREYA_AUDIO_BUFFER_SIZE",
	"MAITREYA_AUDIO_CHANNELS", "MAITREYA_AUDIO_LATENCY_MS",
	"MAITREYA_SERVER_PORT", "MAITREYA_SERVER_READ_TIMEOUT", "MAITREYA_SERVER_WRITE_TIMEOUT",
	"MAITREYA_LOG_LEVEL", "MAITREYA_LOG_FORMAT", "MAITREYA_CACHE_TTL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, audio.DefaultConfig(), cfg.Engine())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAITREYA_AUDIO_SAMPLE_RATE", "48000")
	t.Setenv("MAITREYA_AUDIO_BUFFER_SIZE", "512")
	t.Setenv("MAITREYA_AUDIO_CHANNELS", "1")
	t.Setenv("MAITREYA_AUDIO_LATENCY_MS", "3")
	t.Setenv("MAITREYA_SERVER_PORT", "3000")
	t.Setenv("MAITREYA_SERVER_READ_TIMEOUT", "1s")
	t.Setenv("MAITREYA_LOG_LEVEL", "debug")
	t.Setenv("MAITREYA_LOG_FORMAT", "console")
	t.Setenv("MAITREYA_CACHE_TTL", "0s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, audio.Config{SampleRate: 48000, BufferSize: 512, Channels: 1, LatencyMs: 3}, cfg.Engine())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Zero(t, cfg.Cache.TTL)
}

func TestLoadInvalidEnvFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAITREYA_SERVER_PORT", "not-a-number")

	_, err := Load("")
	assert.ErrorContains(t, err, "decoding config")
}

func TestLoadAcceptsZeroSampleRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAITREYA_AUDIO_SAMPLE_RATE", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Zero(t, cfg.Engine().SampleRate)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
audio:
  sample_rate: 22050
  channels: 1
server:
  port: 9000
cache:
  ttl: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(22050), cfg.Audio.SampleRate)
	assert.Equal(t, uint16(1), cfg.Audio.Channels)
	assert.Equal(t, 1024, cfg.Audio.BufferSize, "unset keys keep defaults")
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "audio:\n  sample_rate: 22050\n")
	t.Setenv("MAITREYA_AUDIO_SAMPLE_RATE", "96000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(96000), cfg.Audio.SampleRate)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestDefaultTemplateMatchesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, DefaultConfigTemplate())

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "maitreya.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(got))
}

func TestDump(t *testing.T) {
	out, err := Dump(Defaults())
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, 44100, decoded["audio"]["sample_rate"])
	assert.Equal(t, "json", decoded["log"]["format"])
	assert.Equal(t, "5m0s", decoded["cache"]["ttl"])
}
