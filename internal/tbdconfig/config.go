// Package tbdconfig loads the solver's option defaults from an embedded
// TOML document, merged with an optional user config file, the way
// cmd/calcmark/config loads CalcMark's TUI theme — minus the TUI.
package tbdconfig

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

//go:embed defaults.toml
var defaultsToml string

// Config holds the option defaults read from the embedded defaults plus any
// user override file. The only related CLI flag is solve's -u, which can
// turn DumpUnits on but not off; the other fields have no CLI flag.
type Config struct {
	IterationLimit    int  `mapstructure:"iteration_limit"`
	WarningsAsErrors  bool `mapstructure:"warnings_as_errors"`
	DumpUnits         bool `mapstructure:"dump_units"`
	NewtonIterations  int  `mapstructure:"newton_iterations"`
	NewtonTolerance   float64 `mapstructure:"newton_tolerance"`
}

var (
	cfg     *Config
	once    sync.Once
	loadErr error
)

// Load initializes configuration from embedded defaults and user config
// files. Safe to call multiple times; only loads once.
func Load() (*Config, error) {
	once.Do(func() {
		cfg, loadErr = load()
	})
	return cfg, loadErr
}

// Get returns the loaded configuration. Panics if Load hasn't succeeded.
func Get() *Config {
	if cfg == nil {
		panic("tbdconfig: Load() must be called before Get()")
	}
	return cfg
}

func load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if err := v.ReadConfig(strings.NewReader(defaultsToml)); err != nil {
		panic("tbdconfig: invalid embedded defaults.toml: " + err.Error())
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		fallback := filepath.Join(home, ".tbdrc.toml")
		if _, statErr := os.Stat(fallback); statErr == nil {
			v.SetConfigFile(fallback)
			_ = v.MergeInConfig()
		}

		xdg := filepath.Join(home, ".config", "tbd", "config.toml")
		if _, statErr := os.Stat(xdg); statErr == nil {
			v.SetConfigFile(xdg)
			_ = v.MergeInConfig()
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Reload forces a fresh config load. Use for testing only.
func Reload() (*Config, error) {
	once = sync.Once{}
	cfg = nil
	loadErr = nil
	return Load()
}
