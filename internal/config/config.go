package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/agentx-labs/skillpack/internal/branding"
	"github.com/agentx-labs/skillpack/internal/variant"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyVariant      = "variant"
	KeyOutputDir    = "output_dir"
	KeyVariantsFile = "variants_file"
)

var keyDescriptions = map[string]string{
	KeyVariant:      "default variant for validate, package and init",
	KeyOutputDir:    "directory that receives packaged archives",
	KeyVariantsFile: "YAML or TOML file with additional variants",
}

// Keys returns the recognized configuration keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyDescriptions))
	for k := range keyDescriptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe returns the help text for key.
func Describe(key string) string { return keyDescriptions[key] }

// Dir returns the path to the config directory (~/.skillpack/). The
// SKILLPACK_HOME environment variable overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.skillpack/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyVariant, variant.DefaultName)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if _, ok := keyDescriptions[key]; !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys())
	}
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
