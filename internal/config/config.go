package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Data     DataConfig
	Razorpay RazorpayConfig
	Budget   BudgetConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings for the state store.
type DatabaseConfig struct {
	Path string
}

// DataConfig holds ledger file locations. An empty LedgerPath means the
// bundled sample dataset.
type DataConfig struct {
	LedgerPath   string `mapstructure:"ledger_path"`
	PaymentsPath string `mapstructure:"payments_path"`
}

// RazorpayConfig holds poller settings. Credentials come from env vars
// (or .env), never from the config file.
type RazorpayConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	KeyIDEnv     string        `mapstructure:"key_id_env"`
	KeySecretEnv string        `mapstructure:"key_secret_env"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// BudgetConfig holds the starting ceilings for a fresh session.
type BudgetConfig struct {
	Overall         float64 `mapstructure:"overall"`
	CategoryDefault float64 `mapstructure:"category_default"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
	Timezone       string
}

// Load reads configuration from file and env. Env var overrides use
// prefix FINASSIST_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "finassist")

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir, "finassist.db"))
	v.SetDefault("data.ledger_path", "")
	v.SetDefault("data.payments_path", filepath.Join(dataDir, "razorpay_payments.csv"))
	v.SetDefault("razorpay.base_url", "https://api.razorpay.com")
	v.SetDefault("razorpay.key_id_env", "RAZORPAY_KEY_ID")
	v.SetDefault("razorpay.key_secret_env", "RAZORPAY_KEY_SECRET")
	v.SetDefault("razorpay.poll_interval", "1s")
	v.SetDefault("budget.overall", 10000)
	v.SetDefault("budget.category_default", 1000)
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.date_format", "02/01")
	v.SetDefault("ui.timezone", "Asia/Kolkata")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FINASSIST_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "finassist"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FINASSIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config
// directory if needed. Used by the budgets view to persist defaults;
// razorpay credentials are deliberately not written.
func Save(cfg Config) error {
	path := os.Getenv("FINASSIST_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "finassist", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("data.ledger_path", cfg.Data.LedgerPath)
	v.Set("data.payments_path", cfg.Data.PaymentsPath)
	v.Set("razorpay.base_url", cfg.Razorpay.BaseURL)
	v.Set("razorpay.key_id_env", cfg.Razorpay.KeyIDEnv)
	v.Set("razorpay.key_secret_env", cfg.Razorpay.KeySecretEnv)
	v.Set("razorpay.poll_interval", cfg.Razorpay.PollInterval.String())
	v.Set("budget.overall", cfg.Budget.Overall)
	v.Set("budget.category_default", cfg.Budget.CategoryDefault)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
