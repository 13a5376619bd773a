package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Message is one schedulable payload attached to a contact or group.
// Type selects which of the type-specific fields apply.
type Message struct {
	Type      string `mapstructure:"type"`
	Content   string `mapstructure:"content"`
	ImagePath string `mapstructure:"image_path"`
	Caption   string `mapstructure:"caption"`
	Time      string `mapstructure:"time"`
}

// Contact is an individual recipient addressed by phone number.
type Contact struct {
	Name     string    `mapstructure:"name"`
	Phone    string    `mapstructure:"phone"`
	Messages []Message `mapstructure:"messages"`
}

// Group is a named group recipient. Groups have no phone and are routed
// by name.
type Group struct {
	Name     string    `mapstructure:"name"`
	Messages []Message `mapstructure:"messages"`
}

type Contacts struct {
	Personal []Contact `mapstructure:"personal"`
	Groups   []Group   `mapstructure:"groups"`
}

type Settings struct {
	WaitTime     int      `mapstructure:"wait_time"`
	CloseTab     bool     `mapstructure:"close_tab"`
	ImageFormats []string `mapstructure:"image_formats"`
	Timezone     string   `mapstructure:"timezone"`
}

// Config is the declarative contact/message configuration. It is loaded
// once at startup and read-only thereafter.
type Config struct {
	Contacts Contacts `mapstructure:"contacts"`
	Settings Settings `mapstructure:"settings"`
}

// MessageCount returns the total number of message entries across all
// personal contacts and groups.
func (c *Config) MessageCount() int {
	total := 0
	for _, contact := range c.Contacts.Personal {
		total += len(contact.Messages)
	}
	for _, group := range c.Contacts.Groups {
		total += len(group.Messages)
	}
	return total
}

// Empty returns a configuration with defaults applied and no contacts.
// Used as the fallback when the configuration document is missing or
// malformed, so the scheduler can proceed with zero jobs.
func Empty() *Config {
	cfg := &Config{}
	cfg.Settings.CloseTab = DefaultCloseTab
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration document at path. A missing file is
// returned as os.ErrNotExist so the caller can materialize a sample.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("settings.wait_time", DefaultWaitTime)
	v.SetDefault("settings.close_tab", DefaultCloseTab)
	v.SetDefault("settings.image_formats", DefaultImageFormats)
	v.SetDefault("settings.timezone", DefaultTimezone)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Settings.WaitTime <= 0 {
		cfg.Settings.WaitTime = DefaultWaitTime
	}
	if len(cfg.Settings.ImageFormats) == 0 {
		cfg.Settings.ImageFormats = append([]string{}, DefaultImageFormats...)
	}
	if cfg.Settings.Timezone == "" {
		cfg.Settings.Timezone = DefaultTimezone
	}
}
