package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	KnowledgeBase string           `yaml:"knowledge_base" mapstructure:"knowledge_base"`
	Responses     string           `yaml:"responses" mapstructure:"responses"`
	Prompt        string           `yaml:"prompt" mapstructure:"prompt"`
	Color         bool             `yaml:"color" mapstructure:"color"`
	Transcript    TranscriptConfig `yaml:"transcript" mapstructure:"transcript"`
}

type TranscriptConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		KnowledgeBase: "knowledge_base.json",
		Responses:     "responses.json",
		Prompt:        "You: ",
		Color:         true,
		Transcript: TranscriptConfig{
			Enabled: false,
			Dir:     defaultTranscriptDir(),
		},
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "helpdesk")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "helpdesk")
}

// Path is the default location of the user config file.
func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

func defaultTranscriptDir() string {
	return filepath.Join(configDir(), "transcripts")
}

// Load reads the configuration. An explicit file is used when given;
// otherwise config.yaml is looked up in the working directory and the user
// config directory. A .env file in the working directory is loaded first, and
// HELPDESK_* environment variables override file values.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	cfg := DefaultConfig()
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	// Defaults must be registered for AutomaticEnv to see the keys on Unmarshal.
	v.SetDefault("knowledge_base", cfg.KnowledgeBase)
	v.SetDefault("responses", cfg.Responses)
	v.SetDefault("prompt", cfg.Prompt)
	v.SetDefault("color", cfg.Color)
	v.SetDefault("transcript.enabled", cfg.Transcript.Enabled)
	v.SetDefault("transcript.dir", cfg.Transcript.Dir)

	v.SetEnvPrefix("HELPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, fmt.Errorf("config: %w", err)
		}
		// Config file not found; ignore and use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.KnowledgeBase = expandEnv(cfg.KnowledgeBase)
	cfg.Responses = expandEnv(cfg.Responses)
	cfg.Transcript.Dir = expandEnv(cfg.Transcript.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.KnowledgeBase == "" {
		return fmt.Errorf("config: knowledge_base is required")
	}
	if c.Responses == "" {
		return fmt.Errorf("config: responses is required")
	}
	if c.KnowledgeBase == c.Responses {
		return fmt.Errorf("config: knowledge_base and responses must be different files (both %q)", c.KnowledgeBase)
	}
	if c.Prompt == "" {
		c.Prompt = "You: "
	}
	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		c.Transcript.Dir = defaultTranscriptDir()
	}
	return nil
}

// Save writes c as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
