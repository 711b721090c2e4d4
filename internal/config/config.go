package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DatasetConfig selects where career categories are read from.
type DatasetConfig struct {
	Type  string `yaml:"type"`
	Path  string `yaml:"path,omitempty"`
	Table string `yaml:"table,omitempty"`
}

// NormalizerConfig configures text normalization.
type NormalizerConfig struct {
	Reducer     string `yaml:"reducer"`
	FoldAccents bool   `yaml:"fold_accents"`
}

// GoogleTranslatorConfig holds settings for the Google Translate endpoint.
type GoogleTranslatorConfig struct {
	BaseURL     string `yaml:"base_url"`
	MaxRetries  int    `yaml:"max_retries"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// TranslatorConfig selects and configures the translator.
type TranslatorConfig struct {
	Type   string                  `yaml:"type"`
	Source string                  `yaml:"source"`
	Target string                  `yaml:"target"`
	Google *GoogleTranslatorConfig `yaml:"google,omitempty"`
}

// AdzunaConfig contains connection details for the Adzuna job search API.
type AdzunaConfig struct {
	BaseURL        string `yaml:"base_url"`
	AppIDEnv       string `yaml:"app_id_env"`
	AppKeyEnv      string `yaml:"app_key_env"`
	Country        string `yaml:"country"`
	ResultsPerPage int    `yaml:"results_per_page"`
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
}

// JobMarketConfig selects and configures the job-market provider.
type JobMarketConfig struct {
	Type   string        `yaml:"type"`
	Adzuna *AdzunaConfig `yaml:"adzuna,omitempty"`
}

// RedisConfig contains connection details for the Redis market cache.
type RedisConfig struct {
	Addr        string `yaml:"addr"`
	PasswordEnv string `yaml:"password_env"`
	DB          int    `yaml:"db"`
	Prefix      string `yaml:"prefix"`
}

// CacheConfig selects the market-data cache.
type CacheConfig struct {
	Type    string       `yaml:"type"`
	TTLSecs int          `yaml:"ttl_secs"`
	Redis   *RedisConfig `yaml:"redis,omitempty"`
}

// CatalogConfig points at a resource catalog file. Empty uses the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// SessionConfig configures per-conversation behaviour.
type SessionConfig struct {
	Greeting      string  `yaml:"greeting"`
	TraitLearning bool    `yaml:"trait_learning"`
	TraitWeight   float64 `yaml:"trait_weight"`
}

// LogConfig configures the application log.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset    DatasetConfig    `yaml:"dataset"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Translator TranslatorConfig `yaml:"translator"`
	JobMarket  JobMarketConfig  `yaml:"job_market"`
	Cache      CacheConfig      `yaml:"cache"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Session    SessionConfig    `yaml:"session"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/counsellor/config.yaml.
// If neither exists, it writes defaults to ~/.config/counsellor/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	dir, err := UserDir()
	if err != nil {
		return nil, "", err
	}
	userPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// UserDir returns ~/.config/counsellor.
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "counsellor"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig { return defaultConfig() }

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Dataset:    DatasetConfig{Type: "embedded"},
		Normalizer: NormalizerConfig{Reducer: "snowball", FoldAccents: true},
		Translator: TranslatorConfig{Type: "google"},
		JobMarket:  JobMarketConfig{Type: "adzuna"},
		Cache:      CacheConfig{Type: "memory"},
		Log:        LogConfig{Level: "info"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Dataset.Type == "" {
		cfg.Dataset.Type = "embedded"
	}
	if cfg.Dataset.Type == "sqlite" && cfg.Dataset.Table == "" {
		cfg.Dataset.Table = "careers"
	}
	if cfg.Normalizer.Reducer == "" {
		cfg.Normalizer.Reducer = "snowball"
	}
	if cfg.Translator.Type == "" {
		cfg.Translator.Type = "none"
	}
	if cfg.Translator.Source == "" {
		cfg.Translator.Source = "auto"
	}
	if cfg.Translator.Target == "" {
		cfg.Translator.Target = "en"
	}
	if cfg.Translator.Type == "google" {
		if cfg.Translator.Google == nil {
			cfg.Translator.Google = &GoogleTranslatorConfig{}
		}
		g := cfg.Translator.Google
		if g.BaseURL == "" {
			g.BaseURL = "https://translate.googleapis.com"
		}
		if g.MaxRetries == 0 {
			g.MaxRetries = 1
		}
		if g.TimeoutSecs == 0 {
			g.TimeoutSecs = 5
		}
	}
	if cfg.JobMarket.Type == "" {
		cfg.JobMarket.Type = "none"
	}
	if cfg.JobMarket.Type == "adzuna" {
		if cfg.JobMarket.Adzuna == nil {
			cfg.JobMarket.Adzuna = &AdzunaConfig{}
		}
		a := cfg.JobMarket.Adzuna
		if a.BaseURL == "" {
			a.BaseURL = "https://api.adzuna.com/v1/api"
		}
		if a.AppIDEnv == "" {
			a.AppIDEnv = "ADZUNA_APP_ID"
		}
		if a.AppKeyEnv == "" {
			a.AppKeyEnv = "ADZUNA_APP_KEY"
		}
		if a.Country == "" {
			a.Country = "in"
		}
		if a.ResultsPerPage == 0 {
			a.ResultsPerPage = 20
		}
		if a.MaxRetries == 0 {
			a.MaxRetries = 1
		}
		if a.TimeoutSecs == 0 {
			a.TimeoutSecs = 5
		}
	}
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = "none"
	}
	if cfg.Cache.TTLSecs == 0 {
		cfg.Cache.TTLSecs = 600
	}
	if cfg.Cache.Type == "redis" {
		if cfg.Cache.Redis == nil {
			cfg.Cache.Redis = &RedisConfig{}
		}
		if cfg.Cache.Redis.Addr == "" {
			cfg.Cache.Redis.Addr = "localhost:6379"
		}
		if cfg.Cache.Redis.PasswordEnv == "" {
			cfg.Cache.Redis.PasswordEnv = "REDIS_PASSWORD"
		}
		if cfg.Cache.Redis.Prefix == "" {
			cfg.Cache.Redis.Prefix = "counsellor:market"
		}
	}
	if cfg.Session.TraitWeight == 0 {
		cfg.Session.TraitWeight = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
