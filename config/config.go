package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"weekly-rollover/pkg/ical"
)

const (
	BackendSQLite = "sqlite"
	BackendMemos  = "memos"

	EnvPrefix = "WEEKLY"
)

// Config holds all weekly rollover configuration.
type Config struct {
	Rollover RolloverConfig `yaml:"rollover"`
	Calendar CalendarConfig `yaml:"calendar"`
	Store    StoreConfig    `yaml:"store"`
	Memos    MemosConfig    `yaml:"memos"`
	Editor   EditorConfig   `yaml:"editor"`
	Logger   LoggerConfig   `yaml:"logger"`

	// File is the config file that was read, empty when running on defaults.
	File string `yaml:"-"`
}

type RolloverConfig struct {
	Title           string   `yaml:"title"`
	Tags            []string `yaml:"tags"`
	ArchivePrevious bool     `yaml:"archive_previous"`
	LookupPolicy    string   `yaml:"lookup_policy"`
	CompletedPolicy string   `yaml:"completed_policy"`
	DateLabel       string   `yaml:"date_label"`
	DatedUpdates    bool     `yaml:"dated_updates"`
	PinNew          bool     `yaml:"pin_new"`
}

type CalendarConfig struct {
	Skip        bool         `yaml:"skip"`
	DefaultName string       `yaml:"default_name"`
	Timezone    string       `yaml:"timezone"`
	Google      GoogleConfig `yaml:"google"`
	ICal        ICalConfig   `yaml:"ical"`
}

type GoogleConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	TokenPath       string `yaml:"token_path"`
}

type ICalConfig struct {
	Feeds []ical.Feed `yaml:"feeds"`
}

type StoreConfig struct {
	Backend string       `yaml:"backend"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MemosConfig struct {
	URL         string  `yaml:"url"`
	AccessToken string  `yaml:"access_token"`
	ExternalURL string  `yaml:"external_url"` // URL for user-facing links
	RatePerSec  float64 `yaml:"rate_per_sec"`
}

type EditorConfig struct {
	Mode    string `yaml:"mode"`
	Command string `yaml:"command"` // Overrides $EDITOR
}

type LoggerConfig struct {
	Level        string `yaml:"level"`
	Mode         string `yaml:"mode"`
	Encoding     string `yaml:"encoding"`
	ColorEnabled bool   `yaml:"color_enabled"`
}

// Load reads configuration with Viper.
// An explicit path wins; otherwise config.yaml is searched in ./config, .
// and $HOME/.config/weekly. WEEKLY_* environment variables override files.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "weekly"))
		}
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{File: v.ConfigFileUsed()}

	// Rollover
	cfg.Rollover.Title = v.GetString("rollover.title")
	cfg.Rollover.Tags = stringList(v, "rollover.tags")
	cfg.Rollover.ArchivePrevious = v.GetBool("rollover.archive_previous")
	cfg.Rollover.LookupPolicy = v.GetString("rollover.lookup_policy")
	cfg.Rollover.CompletedPolicy = v.GetString("rollover.completed_policy")
	cfg.Rollover.DateLabel = v.GetString("rollover.date_label")
	cfg.Rollover.DatedUpdates = v.GetBool("rollover.dated_updates")
	cfg.Rollover.PinNew = v.GetBool("rollover.pin_new")

	// Calendar
	cfg.Calendar.Skip = v.GetBool("calendar.skip")
	cfg.Calendar.DefaultName = v.GetString("calendar.default_name")
	cfg.Calendar.Timezone = v.GetString("calendar.timezone")
	cfg.Calendar.Google.CredentialsPath = v.GetString("calendar.google.credentials_path")
	cfg.Calendar.Google.TokenPath = v.GetString("calendar.google.token_path")
	if err := v.UnmarshalKey("calendar.ical.feeds", &cfg.Calendar.ICal.Feeds); err != nil {
		return nil, fmt.Errorf("invalid calendar.ical.feeds: %w", err)
	}

	// Store
	cfg.Store.Backend = strings.ToLower(v.GetString("store.backend"))
	cfg.Store.SQLite.Path = v.GetString("store.sqlite.path")

	cfg.Memos.URL = v.GetString("memos.url")
	cfg.Memos.AccessToken = v.GetString("memos.access_token")
	cfg.Memos.ExternalURL = v.GetString("memos.external_url")
	cfg.Memos.RatePerSec = v.GetFloat64("memos.rate_per_sec")
	// If external URL not set, default to API URL
	if cfg.Memos.ExternalURL == "" {
		cfg.Memos.ExternalURL = cfg.Memos.URL
	}

	cfg.Editor.Mode = strings.ToLower(v.GetString("editor.mode"))
	cfg.Editor.Command = v.GetString("editor.command")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rollover.title", "This week at work")
	v.SetDefault("rollover.tags", []string{"work", "weekly"})
	v.SetDefault("rollover.archive_previous", true)
	v.SetDefault("rollover.lookup_policy", "title_and_tags")
	v.SetDefault("rollover.completed_policy", "summarize")
	v.SetDefault("rollover.date_label", "week_start")
	v.SetDefault("rollover.dated_updates", false)
	v.SetDefault("rollover.pin_new", true)

	v.SetDefault("calendar.skip", false)
	v.SetDefault("calendar.default_name", "")
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.google.credentials_path", "")
	v.SetDefault("calendar.google.token_path", "./data/gcal-token.json")

	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.sqlite.path", "./data/notes.db")
	v.SetDefault("memos.rate_per_sec", 5)

	v.SetDefault("editor.mode", "terminal")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
}

// stringList accepts a YAML list or a comma separated env value.
func stringList(v *viper.Viper, key string) []string {
	raw := v.GetStringSlice(key)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("store.sqlite.path is required")
		}
	case BackendMemos:
		if c.Memos.URL == "" || c.Memos.AccessToken == "" {
			return fmt.Errorf("memos.url and memos.access_token are required for the memos backend")
		}
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}

	for i, f := range c.Calendar.ICal.Feeds {
		if f.Name == "" || f.URL == "" {
			return fmt.Errorf("calendar.ical.feeds[%d]: name and url are required", i)
		}
	}
	return nil
}
