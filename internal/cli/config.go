package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tasktrack/domain/dto"
)

const defaultServer = "http://localhost:8080"

// Config ~/.tasktrack/config.yaml
type Config struct {
	Server       string `mapstructure:"server" yaml:"server"`
	AccessToken  string `mapstructure:"access_token" yaml:"access_token,omitempty"`
	RefreshToken string `mapstructure:"refresh_token" yaml:"refresh_token,omitempty"`
	DefaultBoard string `mapstructure:"default_board" yaml:"default_board,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{Server: defaultServer}
}

// HomeDir the directory holding config and drafts
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasktrack"
	}
	return filepath.Join(home, ".tasktrack")
}

func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// LoadConfig missing file gives the defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("server", defaultServer)
	v.SetEnvPrefix("TASKTRACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes with 0600, the file carries tokens
func SaveConfig(path string, cfg *Config) error {
	return writeYAML(path, cfg)
}

// ========== Reminder drafts ==========

// reminderDraft unsaved reminder edits kept between commands
type reminderDraft struct {
	Priorities []dto.PriorityConfigResponse `yaml:"priorities"`
}

// draftPath next to the config file
func draftPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "reminders-draft.yaml")
}

// loadDraft nil when no draft exists
func loadDraft(path string) ([]dto.PriorityConfigResponse, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var draft reminderDraft
	if err := yaml.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return draft.Priorities, nil
}

func saveDraft(path string, priorities []dto.PriorityConfigResponse) error {
	return writeYAML(path, reminderDraft{Priorities: priorities})
}

func removeDraft(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o600)
}
