package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
	"github.com/pr-poehali-dev/mini-magazin-site/store"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	Log     LoggerConfig  `yaml:"log"`
	Catalog []SeedProduct `yaml:"catalog"`
}

// SeedProduct is a catalog entry as written in the config file.
type SeedProduct struct {
	ID          int64    `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       float64  `yaml:"price"`
	Category    string   `yaml:"category"`
	Sizes       []string `yaml:"sizes"`
	Image       string   `yaml:"image"`
	Description string   `yaml:"description"`
	InStock     bool     `yaml:"in_stock"`
}

// Load reads the YAML file at path when it exists and environment
// variables otherwise.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("error reading env: %w", err)
		}
	}

	if cfg.Log.Env == "" {
		cfg.Log.Env = cfg.Env
	}
	return &cfg, nil
}

// MustLoad is Load with CONFIG_PATH (default ./config/local.yaml); it
// panics on a malformed config.
func MustLoad() *Config {
	cfg, err := Load(ParseWithFallback("CONFIG_PATH", "./config/local.yaml"))
	if err != nil {
		panic(err)
	}
	return cfg
}

// Seed returns the configured catalog, or the built-in one when the config
// has none.
func (c *Config) Seed() ([]models.Product, error) {
	if len(c.Catalog) == 0 {
		return store.DefaultSeed(), nil
	}

	out := make([]models.Product, 0, len(c.Catalog))
	for i, sp := range c.Catalog {
		category := models.Category(sp.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("catalog[%d]: unknown category %q", i, sp.Category)
		}
		if sp.Name == "" || sp.Price < 0 {
			return nil, fmt.Errorf("catalog[%d]: name and a non-negative price are required", i)
		}

		out = append(out, models.Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Price:       decimal.NewFromFloat(sp.Price),
			Category:    category,
			Sizes:       models.NewSizes(sp.Sizes...),
			Image:       sp.Image,
			Description: sp.Description,
			InStock:     sp.InStock,
		})
	}
	return out, nil
}

func ParseWithFallback(envName string, fallback string) string {
	result := os.Getenv(envName)
	if result == "" {
		result = fallback
	}

	return result
}
