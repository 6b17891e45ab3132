package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Canonical color channels of the rig.
const (
	ChannelGreen = "green"
	ChannelIso   = "iso"
	ChannelRed   = "red"
)

const (
	envPrefix      = "FIPQC"
	configName     = "config"
	defaultCfgPath = "configs"
)

// Config is the full typed configuration.
type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Session     SessionConfig     `mapstructure:"session"`
	Acquisition AcquisitionConfig `mapstructure:"acquisition"`
	QC          QCConfig          `mapstructure:"qc"`
	DB          DBConfig          `mapstructure:"db"`
	Server      ServerConfig      `mapstructure:"server"`
	Auth        AuthConfig        `mapstructure:"auth"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// SessionConfig describes how epochs and timing streams are located on disk.
type SessionConfig struct {
	EpochDir      string   `mapstructure:"epoch_dir"`
	EpochGlob     string   `mapstructure:"epoch_glob"`
	TimingStreams []string `mapstructure:"timing_streams"`
	TimingColumn  string   `mapstructure:"timing_column"`
	Timezone      string   `mapstructure:"timezone"`
}

type AcquisitionConfig struct {
	WriteJSON       bool `mapstructure:"write_json"`
	AnnotateSession bool `mapstructure:"annotate_session"`
}

// ChannelConfig holds per color-channel camera expectations.
// ExpectedFPS of zero means "not configured" and the frame-rate check is skipped.
type ChannelConfig struct {
	FrameStride int     `mapstructure:"frame_stride"`
	ExpectedFPS float64 `mapstructure:"expected_fps"`
}

// QCConfig holds every QC threshold.
type QCConfig struct {
	Channels           map[string]ChannelConfig `mapstructure:"channels"`
	ClockJitterS       float64                  `mapstructure:"clock_jitter_s"`
	FramePeriodStdS    float64                  `mapstructure:"frame_period_std_s"`
	FramePeriodRelTol  float64                  `mapstructure:"frame_period_rel_tol"`
	SuddenChangeLimit  float64                  `mapstructure:"sudden_change_limit"`
	SensorFloorLimit   float64                  `mapstructure:"sensor_floor_limit"`
	MinDurationS       float64                  `mapstructure:"min_duration_s"`
	FiberColumnPattern string                   `mapstructure:"fiber_column_pattern"`
	ArtifactDir        string                   `mapstructure:"artifact_dir"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// Channel returns the configuration for a color channel, falling back to stride 1
// with no expected frame rate when the channel is not configured.
func (q QCConfig) Channel(name string) ChannelConfig {
	if c, ok := q.Channels[name]; ok {
		if c.FrameStride <= 0 {
			c.FrameStride = 1
		}
		return c
	}
	return ChannelConfig{FrameStride: 1}
}

// Load reads the config file (if any) at path, or from ./configs when path is empty,
// applies FIPQC_* environment overrides and returns the validated result.
// A missing config file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultCfgPath) // configs/config.yml
		v.SetConfigName(configName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
