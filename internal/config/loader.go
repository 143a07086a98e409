package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	envPrefix     = "MATCHBOT_"
	envConfigFile = "MATCHBOT_CONFIG"

	// Conventional names the job has always read its secrets from.
	envSportsDBKey   = "SPORTSDB_API_KEY"
	envTelegramToken = "TELEGRAM_BOT_TOKEN"
	envTelegramChat  = "TELEGRAM_CHAT_ID"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MATCHBOT_CONFIG is set
//  3. SPORTSDB_API_KEY, TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID
//  4. env (prefix MATCHBOT_, "__" separates nested keys)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// MATCHBOT_SPORTSDB__API_KEY -> sportsdb.api_key
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	// A configured league list replaces the defaults rather than merging by index.
	if k.Exists("leagues") {
		cfg.Leagues = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	applySecrets(k, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applySecrets fills credentials from their conventional variables unless a
// MATCHBOT_ variable or the file already set them.
func applySecrets(k *koanf.Koanf, cfg *Config) {
	if v := os.Getenv(envSportsDBKey); v != "" && !k.Exists("sportsdb.api_key") {
		cfg.SportsDB.APIKey = v
	}
	if v := os.Getenv(envTelegramToken); v != "" && !k.Exists("telegram.token") {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv(envTelegramChat); v != "" && !k.Exists("telegram.chat_id") {
		cfg.Telegram.ChatID = strings.TrimSpace(v)
	}
}
