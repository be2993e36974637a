package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Panel   PanelConfig   `mapstructure:"panel"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// PanelConfig holds tunables for the streaming panel pipeline
type PanelConfig struct {
	// SilentPrefixes lists message-id prefixes whose text streams are
	// background tasks and never rendered (e.g. conversation naming).
	SilentPrefixes []string `mapstructure:"silent_prefixes"`

	// NameCheckDelay is how long after a stream completes the
	// conversation-naming check is scheduled.
	NameCheckDelay time.Duration `mapstructure:"name_check_delay"`
}

// ReplayConfig holds settings for replaying recorded event streams
type ReplayConfig struct {
	Path  string        `mapstructure:"path"`
	Delay time.Duration `mapstructure:"delay"`
}

var global *Config

// Load reads configuration from the given file (or the default locations when
// empty), applying defaults and AIPANE_* environment overrides.
func Load(cfgFile string) error {
	v := viper.GetViper()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(SettingsDir())
		v.AddConfigPath(".")
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("AIPANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	global = cfg
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_file", "aipane.log")
	v.SetDefault("logging.preserve", false)
	v.SetDefault("panel.silent_prefixes", []string{"conv_name_"})
	v.SetDefault("panel.name_check_delay", time.Second)
	v.SetDefault("replay.path", "")
	v.SetDefault("replay.delay", 0*time.Millisecond)
}

// Get returns the loaded configuration, loading defaults if Load has not been
// called yet.
func Get() *Config {
	if global == nil {
		v := viper.New()
		setDefaults(v)
		cfg := &Config{}
		_ = v.Unmarshal(cfg)
		global = cfg
	}
	return global
}

// Reset clears the loaded configuration (used by tests).
func Reset() {
	global = nil
	viper.Reset()
}

// SettingsDir returns the directory holding user settings and logs.
func SettingsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aipane"
	}
	return filepath.Join(home, ".aipane")
}

// BuildSettingsPath joins a filename onto the settings directory.
func BuildSettingsPath(filename string) string {
	return filepath.Join(SettingsDir(), filename)
}
