// Package config loads commitsuggest settings from defaults, a TOML file,
// COMMITSUGGEST_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/commitsuggest"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "COMMITSUGGEST"

// Prober names.
const (
	ProberExec  = "exec"
	ProberGoGit = "go-git"
)

// Backend names.
const (
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// Output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Config holds all configuration for commitsuggest.
type Config struct {
	Git           GitConfig          `mapstructure:"git"`
	Inference     InferenceConfig    `mapstructure:"inference"`
	Diff          DiffConfig         `mapstructure:"diff"`
	Output        OutputConfig       `mapstructure:"output"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Workers       int                `mapstructure:"workers"`
}

// GitConfig selects how repositories are queried.
type GitConfig struct {
	Bin    string `mapstructure:"bin"`
	Prober string `mapstructure:"prober"`
}

// InferenceConfig selects the language model backend.
type InferenceConfig struct {
	Backend string        `mapstructure:"backend"`
	Bin     string        `mapstructure:"bin"`
	Model   string        `mapstructure:"model"`   // Empty selects the backend default
	Timeout time.Duration `mapstructure:"timeout"` // 0 disables the limit
}

// DiffConfig controls diff aggregation.
type DiffConfig struct {
	OnError string `mapstructure:"on_error"`
}

// OutputConfig controls how suggestions are printed.
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Highlight bool   `mapstructure:"highlight"`
	Theme     string `mapstructure:"theme"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Bin:    "git",
			Prober: ProberExec,
		},
		Inference: InferenceConfig{
			Backend: BackendOllama,
			Bin:     "ollama",
		},
		Diff: DiffConfig{
			OnError: commitsuggest.PolicyStop.String(),
		},
		Output: OutputConfig{
			Format:    FormatText,
			Highlight: true,
			Theme:     "dark",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Workers: 4,
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"git-bin":    "git.bin",
	"prober":     "git.prober",
	"backend":    "inference.backend",
	"ollama-bin": "inference.bin",
	"model":      "inference.model",
	"timeout":    "inference.timeout",
	"on-error":   "diff.on_error",
	"format":     "output.format",
	"highlight":  "output.highlight",
	"theme":      "output.theme",
	"notify":     "notifications.enabled",
	"log-level":  "log.level",
	"log-format": "log.format",
	"workers":    "workers",
}

// RegisterFlags defines the flags that override configuration keys.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("git-bin", d.Git.Bin, "git executable")
	fs.String("prober", d.Git.Prober, "repository prober: exec or go-git")
	fs.String("backend", d.Inference.Backend, "inference backend: ollama or gemini")
	fs.String("ollama-bin", d.Inference.Bin, "ollama executable")
	fs.StringP("model", "m", d.Inference.Model, "model name (default depends on backend)")
	fs.Duration("timeout", d.Inference.Timeout, "inference timeout (0 for none)")
	fs.String("on-error", d.Diff.OnError, "per-file diff failure policy: stop, omit or fail")
	fs.StringP("format", "f", d.Output.Format, "output format: text or html")
	fs.Bool("highlight", d.Output.Highlight, "colorize diff output")
	fs.String("theme", d.Output.Theme, "color theme: dark or light")
	fs.Bool("notify", d.Notifications.Enabled, "show a desktop notification when done")
	fs.String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	fs.String("log-format", d.Log.Format, "log format: text or json")
	fs.IntP("workers", "j", d.Workers, "concurrent requests in batch mode")
}

// DefaultPath returns the configuration file location under the user
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "commitsuggest", "config.toml"), nil
}

// Load reads configuration. An explicit path must exist; when path is empty
// the file at DefaultPath is read if present. Flags that were set on the
// command line take precedence over the environment, the file and defaults.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("git.bin", d.Git.Bin)
	v.SetDefault("git.prober", d.Git.Prober)
	v.SetDefault("inference.backend", d.Inference.Backend)
	v.SetDefault("inference.bin", d.Inference.Bin)
	v.SetDefault("inference.model", d.Inference.Model)
	v.SetDefault("inference.timeout", d.Inference.Timeout)
	v.SetDefault("diff.on_error", d.Diff.OnError)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.highlight", d.Output.Highlight)
	v.SetDefault("output.theme", d.Output.Theme)
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("workers", d.Workers)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Git.Prober {
	case ProberExec, ProberGoGit:
	default:
		return fmt.Errorf("invalid git.prober %q (want %s or %s)", c.Git.Prober, ProberExec, ProberGoGit)
	}
	switch c.Inference.Backend {
	case BackendOllama, BackendGemini:
	default:
		return fmt.Errorf("invalid inference.backend %q (want %s or %s)", c.Inference.Backend, BackendOllama, BackendGemini)
	}
	if c.Inference.Timeout < 0 {
		return errors.New("inference.timeout must not be negative")
	}
	if _, err := commitsuggest.ParseDiffFailurePolicy(c.Diff.OnError); err != nil {
		return fmt.Errorf("invalid diff.on_error: %w", err)
	}
	switch c.Output.Format {
	case FormatText, FormatHTML:
	default:
		return fmt.Errorf("invalid output.format %q (want %s or %s)", c.Output.Format, FormatText, FormatHTML)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Policy returns the configured diff failure policy.
func (c *Config) Policy() commitsuggest.DiffFailurePolicy {
	p, _ := commitsuggest.ParseDiffFailurePolicy(c.Diff.OnError)
	return p
}
