package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level passbook.yaml configuration.
type Config struct {
	Bank      BankConfig      `yaml:"bank"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Statement StatementConfig `yaml:"statement"`
}

// BankConfig identifies the ledger and its display currency.
type BankConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// StorageConfig names the data files, relative to the data directory.
type StorageConfig struct {
	AccountsFile     string `yaml:"accounts_file"`
	TransactionsFile string `yaml:"transactions_file"`
	LockoutsFile     string `yaml:"lockouts_file"`
}

// AuthConfig controls the login lockout.
type AuthConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// StatementConfig controls mini statement output.
type StatementConfig struct {
	Limit int `yaml:"limit"`
}

// Load reads a passbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(bankName string) *Config {
	return &Config{
		Bank: BankConfig{
			Name:     bankName,
			Currency: "₹",
		},
		Storage: StorageConfig{
			AccountsFile:     "accounts.txt",
			TransactionsFile: "transactions.txt",
			LockoutsFile:     "lockouts.csv",
		},
		Auth: AuthConfig{
			MaxAttempts: 3,
		},
		Statement: StatementConfig{
			Limit: 10,
		},
	}
}
