package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	charmLog "github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/hylla/taskboard/internal/domain"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Board   BoardConfig   `toml:"board"`
	Keys    KeyConfig     `toml:"keys"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type BoardConfig struct {
	DefaultCategory string `toml:"default_category"`
	DefaultFilter   string `toml:"default_filter"`
	ShowStats       bool   `toml:"show_stats"`
}

type KeyConfig struct {
	AddTask    string `toml:"add_task"`
	EditTask   string `toml:"edit_task"`
	ToggleTask string `toml:"toggle_task"`
	DeleteTask string `toml:"delete_task"`
	NextFilter string `toml:"next_filter"`
	CopyTitle  string `toml:"copy_title"`
}

func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".taskboard/log",
			},
		},
		Board: BoardConfig{
			DefaultCategory: string(domain.CategoryWork),
			DefaultFilter:   string(domain.FilterAll),
			ShowStats:       true,
		},
		Keys: KeyConfig{
			AddTask:    "n",
			EditTask:   "e",
			ToggleTask: " ",
			DeleteTask: "d",
			NextFilter: "f",
			CopyTitle:  "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := charmLog.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if _, err := domain.ParseCategory(c.Board.DefaultCategory); err != nil {
		return fmt.Errorf("invalid board.default_category: %q", c.Board.DefaultCategory)
	}
	if _, err := domain.ParseFilterMode(c.Board.DefaultFilter); err != nil {
		return fmt.Errorf("invalid board.default_filter: %q", c.Board.DefaultFilter)
	}

	keys := []struct {
		name  string
		value string
		alias string
	}{
		{"add_task", c.Keys.AddTask, "a"},
		{"edit_task", c.Keys.EditTask, ""},
		{"toggle_task", c.Keys.ToggleTask, "x"},
		{"delete_task", c.Keys.DeleteTask, ""},
		{"next_filter", c.Keys.NextFilter, ""},
		{"copy_title", c.Keys.CopyTitle, ""},
	}
	seen := maps.Clone(fixedKeys)
	for _, k := range keys {
		if k.alias != "" {
			seen[k.alias] = "keys." + k.name
		}
	}
	for _, k := range keys {
		// A single space is a valid binding, so only the empty string is rejected.
		if k.value == "" {
			return fmt.Errorf("keys.%s is required", k.name)
		}
		norm := normalizeKey(k.value)
		if owner, ok := seen[norm]; ok && owner != "keys."+k.name {
			return fmt.Errorf("keys.%s conflicts with %s: %q", k.name, owner, k.value)
		}
		seen[norm] = "keys." + k.name
	}

	return nil
}

// fixedKeys are bound by the board and cannot be reassigned.
var fixedKeys = map[string]string{
	"q":         "quit",
	"ctrl+c":    "quit",
	"?":         "help",
	"j":         "move down",
	"down":      "move down",
	"k":         "move up",
	"up":        "move up",
	"1":         "filter all",
	"2":         "filter active",
	"3":         "filter completed",
	"tab":       "next category",
	"shift+tab": "prev category",
	"enter":     "submit",
	"esc":       "cancel",
}

// normalizeKey maps a configured key onto the name the key map matches.
func normalizeKey(raw string) string {
	if raw == " " {
		return "space"
	}
	value := strings.TrimSpace(raw)
	if utf8.RuneCountInString(value) == 1 {
		return value
	}
	return strings.ToLower(value)
}

// Category returns the parsed default category, falling back to Work.
func (c BoardConfig) Category() domain.Category {
	category, err := domain.ParseCategory(c.DefaultCategory)
	if err != nil {
		return domain.CategoryWork
	}
	return category
}

// Filter returns the parsed default filter, falling back to All.
func (c BoardConfig) Filter() domain.FilterMode {
	mode, err := domain.ParseFilterMode(c.DefaultFilter)
	if err != nil {
		return domain.FilterAll
	}
	return mode
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Write encodes cfg as TOML at path, creating the parent directory.
func Write(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
