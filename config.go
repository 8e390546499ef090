package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config controls the editor. It is read from broadnic.yaml in the working
// directory or in $HOME/.config/broadnic, and any key can be overridden by an
// environment variable such as BROADNIC_EDITOR_TAB_SIZE.
type Config struct {
	Editor struct {
		TabSize     int  `mapstructure:"tab_size"`
		MaxColumn   int  `mapstructure:"max_column"`
		LineNumbers bool `mapstructure:"line_numbers"`
	} `mapstructure:"editor"`
	Autosave struct {
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"autosave"`
	Clipboard struct {
		External bool `mapstructure:"external"`
	} `mapstructure:"clipboard"`
	Log struct {
		File  string `mapstructure:"file"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig reads the configuration. A .env file in the working directory is
// loaded into the environment first, if there is one. Missing files are not
// errors; every key has a default.
func LoadConfig(dirs ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("broadnic")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = defaultConfigDirs()
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetDefault("editor.tab_size", 2)
	v.SetDefault("editor.max_column", 80)
	v.SetDefault("editor.line_numbers", true)
	v.SetDefault("autosave.interval", time.Duration(0))
	v.SetDefault("clipboard.external", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("BROADNIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Editor.TabSize < 0 {
		return errors.New("config: editor.tab_size must be zero or greater")
	}
	if c.Editor.MaxColumn <= 0 {
		return errors.New("config: editor.max_column must be greater than 0")
	}
	if c.Autosave.Interval < 0 {
		return errors.New("config: autosave.interval must be zero or greater")
	}
	return nil
}

func defaultConfigDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "broadnic"))
	}
	return dirs
}
