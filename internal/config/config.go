package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/satindergrewal/maitreya/internal/audio"
)

// EnvPrefix namespaces environment overrides, e.g. MAITREYA_AUDIO_SAMPLE_RATE.
const EnvPrefix = "MAITREYA"

// Config holds all runtime configuration.
type Config struct {
	Audio  AudioConfig  `mapstructure:"audio" yaml:"audio"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`
}

// AudioConfig is the engine format. Values are passed through unvalidated.
type AudioConfig struct {
	SampleRate uint32 `mapstructure:"sample_rate" yaml:"sample_rate"`
	BufferSize int    `mapstructure:"buffer_size" yaml:"buffer_size"`
	Channels   uint16 `mapstructure:"channels" yaml:"channels"`
	LatencyMs  uint32 `mapstructure:"latency_ms" yaml:"latency_ms"`
}

// ServerConfig controls the HTTP listener used by serve.
type ServerConfig struct {
	Port         int           `mapstructure:"port" yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // json or console
}

// CacheConfig controls the synthesis result cache. A zero TTL disables it.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	a := audio.DefaultConfig()
	return Config{
		Audio: AudioConfig{
			SampleRate: a.SampleRate,
			BufferSize: a.BufferSize,
			Channels:   a.Channels,
			LatencyMs:  a.LatencyMs,
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 20 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
	}
}

// Engine converts the audio section into the engine's configuration.
func (c Config) Engine() audio.Config {
	return audio.Config{
		SampleRate: c.Audio.SampleRate,
		BufferSize: c.Audio.BufferSize,
		Channels:   c.Audio.Channels,
		LatencyMs:  c.Audio.LatencyMs,
	}
}

// Load resolves configuration from defaults, then the YAML file at path (if
// path is non-empty), then MAITREYA_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer_size", d.Audio.BufferSize)
	v.SetDefault("audio.channels", d.Audio.Channels)
	v.SetDefault("audio.latency_ms", d.Audio.LatencyMs)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("cache.ttl", d.Cache.TTL)
}

// Dump renders cfg as YAML.
func Dump(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# MAITREYA engine configuration
# Every key can be overridden with MAITREYA_<SECTION>_<KEY>,
# e.g. MAITREYA_AUDIO_SAMPLE_RATE=48000

audio:
  sample_rate: 44100   # samples per second
  buffer_size: 1024    # samples per block (informational)
  channels: 2          # informational; synthesis is mono
  latency_ms: 10       # target latency (informational)

server:
  port: 8080
  read_timeout: 10s
  write_timeout: 20s

log:
  level: info          # debug, info, warn, error
  format: json         # json or console

# Synthesis results are deterministic and cached per (frequency, duration).
# Set ttl to 0 to disable.
cache:
  ttl: 5m
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, making any
// missing parent directories.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
