package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MongoConfig is the optional document-store connection. When URI is empty
// the app uses the local JSON file only.
type MongoConfig struct {
	URI        string `yaml:"uri,omitempty"`
	Database   string `yaml:"database,omitempty"`
	Collection string `yaml:"collection,omitempty"`
}

// EmailConfig holds SMTP settings for reminder mails. Sending is
// fire-and-forget; there is no delivery confirmation or retry.
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	From     string `yaml:"from,omitempty"`
	To       string `yaml:"to,omitempty"`
}

type Config struct {
	// DataFile is the local JSON store (also the fallback when Mongo is
	// configured but unreachable).
	DataFile string `yaml:"data_file,omitempty"`

	// ReportsDir receives generated PDF/XLSX reports and chart images.
	ReportsDir string `yaml:"reports_dir,omitempty"`

	// AtRiskWindowDays is how many days before the cutoff date an unpaid
	// account is flagged at_risk.
	AtRiskWindowDays int `yaml:"at_risk_window_days,omitempty"`

	// DueSoonDays is the look-ahead window for reminder mails.
	DueSoonDays int `yaml:"due_soon_days,omitempty"`

	// BackupsToKeep caps the number of rotated data-file backups.
	BackupsToKeep int `yaml:"backups_to_keep,omitempty"`

	Mongo MongoConfig `yaml:"mongo,omitempty"`
	Email EmailConfig `yaml:"email,omitempty"`
}

// DefaultConfigPath returns the default config file path
// (~/.bill-tracker/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bill-tracker", "config.yaml")
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	dataFile := "accounts.json"
	if home, err := os.UserHomeDir(); err == nil {
		dataFile = filepath.Join(home, ".bill-tracker", "accounts.json")
	}
	return &Config{
		DataFile:         dataFile,
		ReportsDir:       "reports",
		AtRiskWindowDays: 5,
		DueSoonDays:      7,
		BackupsToKeep:    5,
		Mongo: MongoConfig{
			Database:   "billtracker",
			Collection: "accounts",
		},
		Email: EmailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// LoadConfig reads and parses a config file, filling unset fields with
// defaults and applying environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadConfigOrDefault loads the config at path, falling back to defaults
// (plus environment overrides) when no config file exists.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}
	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets secrets and machine-specific paths come from the
// environment (or a .env file loaded by the CLI) instead of the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BILL_TRACKER_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("BILL_TRACKER_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("BILL_TRACKER_SMTP_PASSWORD"); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv("BILL_TRACKER_SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Email.Port = p
		}
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
