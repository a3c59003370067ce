package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level fskit configuration.
type Config struct {
	Output Output `mapstructure:"output"`
	Log    Log    `mapstructure:"log"`
	Unpack Unpack `mapstructure:"unpack"`
	Prune  Prune  `mapstructure:"prune"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// Log defines how 'fskit log' renders its timestamp prefix.
type Log struct {
	Timestamp bool `mapstructure:"timestamp"`
	Micro     bool `mapstructure:"micro"`
	Offset    bool `mapstructure:"offset"`
	Readable  bool `mapstructure:"readable"`
	Seconds   bool `mapstructure:"seconds"`
	UTC       bool `mapstructure:"utc"`
}

// Unpack defines defaults for archive extraction.
type Unpack struct {
	Jobs   int  `mapstructure:"jobs"`
	Strict bool `mapstructure:"strict"`
}

// Prune defines defaults for empty-directory pruning.
type Prune struct {
	Exclude []string `mapstructure:"exclude"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("log.timestamp", DefaultLog.Timestamp)
	v.SetDefault("log.micro", DefaultLog.Micro)
	v.SetDefault("log.offset", DefaultLog.Offset)
	v.SetDefault("log.readable", DefaultLog.Readable)
	v.SetDefault("log.seconds", DefaultLog.Seconds)
	v.SetDefault("log.utc", DefaultLog.UTC)
	v.SetDefault("unpack.jobs", DefaultUnpack.Jobs)
	v.SetDefault("unpack.strict", DefaultUnpack.Strict)
	v.SetDefault("prune.exclude", []string{})

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
