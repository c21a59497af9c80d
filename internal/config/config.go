package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/untoldecay/modelscore/internal/debug"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup. A non-empty configFile
// (the --config flag) bypasses discovery.
func Initialize(configFile string) error {
	v = viper.New()

	// Only config.yaml is ever loaded
	v.SetConfigType("yaml")

	// Precedence: --config > project .modelscore/config.yaml > user config dir
	configFileSet := false
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return fmt.Errorf("config file %s: %w", configFile, err)
		}
		v.SetConfigFile(configFile)
		configFileSet = true
	}

	// 1. Walk up from CWD so commands work from subdirectories of a project
	if !configFileSet {
		if path := findProjectConfig(); path != "" {
			v.SetConfigFile(path)
			configFileSet = true
		}
	}

	// 2. User config directory (~/.config/modelscore/config.yaml)
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath := filepath.Join(configDir, "modelscore", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file,
	// e.g. MODELSCORE_FORMAT, MODELSCORE_TERM_COLUMN, MODELSCORE_WATCH_DEBOUNCE
	v.SetEnvPrefix("MODELSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("json", false)
	v.SetDefault("format", "text")
	v.SetDefault("precision", 4)
	v.SetDefault("term-column", "term")
	v.SetDefault("workers", 4)
	v.SetDefault("no-color", false)
	v.SetDefault("log-file", "")
	v.SetDefault("watch.debounce", "500ms")

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		debug.Logf("loaded config from %s", v.ConfigFileUsed())
	} else {
		debug.Logf("no config.yaml found; using defaults and environment variables")
	}

	return nil
}

func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for dir := cwd; ; dir = filepath.Dir(dir) {
		configPath := filepath.Join(dir, ".modelscore", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		if dir == filepath.Dir(dir) {
			return ""
		}
	}
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a configuration value. Used by the CLI to apply explicitly set
// flags on top of file and environment values.
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}
