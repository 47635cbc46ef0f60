// Package config manages the user configuration file (~/.verbkit/config.yaml)
// through Viper, with VERBKIT_* environment variables layered on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/verbkit-labs/verbkit/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys read by the CLI layer.
const (
	KeyOutput     = "output"
	KeyQuiet      = "quiet"
	KeyPluginsDir = "plugins_dir"
)

// Dir returns the path to the config directory (~/.verbkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.verbkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// PluginsDir returns the external plugins root. The plugins_dir key (config
// file or VERBKIT_PLUGINS_DIR) overrides the default ~/.verbkit/plugins.
func PluginsDir() string {
	if dir := viper.GetString(KeyPluginsDir); dir != "" {
		return dir
	}
	return filepath.Join(Dir(), "plugins")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment. The
// reset keeps stale values from an earlier read out when the file has since
// disappeared.
func Load() {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyOutput, "text")
	viper.SetDefault(KeyQuiet, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
