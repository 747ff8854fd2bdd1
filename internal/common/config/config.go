package config

import (
	"fmt"
	"math/big"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Chain struct {
		RPCURL  string `env:"RPC_URL,required,notEmpty"`
		ChainID int64  `env:"CHAIN_ID" envDefault:"1"`

		// Hex private key of the minting wallet. Without it the agent is read-only.
		PrivateKey string `env:"PRIVATE_KEY"`
	}

	Collection struct {
		Address      string `env:"CONTRACT_ADDRESS"`
		ID           string `env:"COLLECTION_ID"`
		Variant      string `env:"COLLECTION_TYPE" envDefault:"standard"`
		AssetID      string `env:"ASSET_ID"`
		WhitelistURL string `env:"WHITELIST_URL"`
	}

	API struct {
		Dev        bool   `env:"API_DEV" envDefault:"false"`
		BaseURL    string `env:"API_BASE_URL"`
		DevBaseURL string `env:"API_DEV_BASE_URL"`
		TimeoutSec int    `env:"API_TIMEOUT_SEC" envDefault:"10"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
		Stream   string `env:"REDIS_MINT_STREAM" envDefault:"mint:attempts"`
	}
}

// Load reads .env when present and parses the environment.
func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Server.Port)
	}
	if _, ok := Networks[c.Chain.ChainID]; !ok {
		return fmt.Errorf("CHAIN_ID %d is not a supported network", c.Chain.ChainID)
	}
	if c.API.TimeoutSec <= 0 {
		return fmt.Errorf("API_TIMEOUT_SEC must be positive")
	}
	return nil
}

// APIBaseURL returns the backend endpoint for the selected environment.
func (c *Config) APIBaseURL() string {
	if c.API.Dev {
		return c.API.DevBaseURL
	}
	return c.API.BaseURL
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

func (c *Config) ChainID() *big.Int {
	return big.NewInt(c.Chain.ChainID)
}
