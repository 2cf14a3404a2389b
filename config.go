package main

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 8060
	DefaultRegion     = "general"
	DefaultCatalogDir = "catalogs"

	DefaultSuccessURL = "http://localhost:5173/payment/success"
	DefaultCancelURL  = "http://localhost:5173/marketplace"
)

// Config holds all configuration for the permitflow server.
type Config struct {
	Host       string
	Port       int
	Region     string
	CatalogDir string

	StripeSecretKey     string
	StripeWebhookSecret string

	CheckoutSuccessURL string
	CheckoutCancelURL  string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Region:             DefaultRegion,
		CatalogDir:         DefaultCatalogDir,
		CheckoutSuccessURL: DefaultSuccessURL,
		CheckoutCancelURL:  DefaultCancelURL,
	}
}

// LoadConfig reads configuration from .env, environment variables and command
// line flags, in increasing order of precedence for the flags.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	// Load .env if present
	_ = godotenv.Load()

	viper.SetEnvPrefix("PERMITFLOW")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("region", cfg.Region)
	viper.SetDefault("catalog-dir", cfg.CatalogDir)
	viper.SetDefault("checkout-success-url", cfg.CheckoutSuccessURL)
	viper.SetDefault("checkout-cancel-url", cfg.CheckoutCancelURL)

	// The Stripe secrets are environment-only; the legacy variable names are
	// kept as aliases.
	_ = viper.BindEnv("stripe-secret-key", "PERMITFLOW_STRIPE_SECRET_KEY", "STRIPE_API_KEY")
	_ = viper.BindEnv("stripe-webhook-secret", "PERMITFLOW_STRIPE_WEBHOOK_SECRET", "STRIPE_WEBHOOK_SECRET")

	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("region", cfg.Region, "Active region profile (general, los-angeles)")
	pflag.String("catalog-dir", cfg.CatalogDir, "Directory of workflow catalog overrides")
	pflag.String("checkout-success-url", cfg.CheckoutSuccessURL, "Default checkout success redirect URL")
	pflag.String("checkout-cancel-url", cfg.CheckoutCancelURL, "Default checkout cancel redirect URL")

	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("region", pflag.Lookup("region"))
	_ = viper.BindPFlag("catalog-dir", pflag.Lookup("catalog-dir"))
	_ = viper.BindPFlag("checkout-success-url", pflag.Lookup("checkout-success-url"))
	_ = viper.BindPFlag("checkout-cancel-url", pflag.Lookup("checkout-cancel-url"))

	pflag.Parse()

	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.Region = viper.GetString("region")
	cfg.CatalogDir = viper.GetString("catalog-dir")
	cfg.StripeSecretKey = viper.GetString("stripe-secret-key")
	cfg.StripeWebhookSecret = viper.GetString("stripe-webhook-secret")
	cfg.CheckoutSuccessURL = viper.GetString("checkout-success-url")
	cfg.CheckoutCancelURL = viper.GetString("checkout-cancel-url")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if _, ok := regions[c.Region]; !ok {
		return fmt.Errorf("unknown region: %s", c.Region)
	}

	if c.CheckoutSuccessURL == "" || c.CheckoutCancelURL == "" {
		return errors.New("checkout redirect URLs cannot be empty")
	}

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
