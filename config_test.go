package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8060, cfg.Port)
	assert.Equal(t, "general", cfg.Region)
	assert.Equal(t, "catalogs", cfg.CatalogDir)
	assert.Equal(t, "0.0.0.0:8060", cfg.Address())
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "valid los angeles",
			mutate: func(c *Config) { c.Region = "los-angeles" },
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port must be between 1 and 65535",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port must be between 1 and 65535",
		},
		{
			name:    "unknown region",
			mutate:  func(c *Config) { c.Region = "mars" },
			wantErr: "unknown region: mars",
		},
		{
			name:    "empty redirect URL",
			mutate:  func(c *Config) { c.CheckoutSuccessURL = "" },
			wantErr: "checkout redirect URLs cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
