package internal

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	RiotAPIKey      string `env:"RIOT_API_KEY"`
	RiotRegion      string `env:"RIOT_REGION" envDefault:"NA1"`
	RiotPlatformURL string `env:"RIOT_PLATFORM_URL"`
	RiotRoutingURL  string `env:"RIOT_ROUTING_URL"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	NATSUrl      string `env:"NATS_URL"`
	NATSClientID string `env:"NATS_CLIENT_ID" envDefault:"lol-match-core"`

	RateLimitEnabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRedisPrefix string `env:"RATE_LIMIT_REDIS_PREFIX" envDefault:"lol:ratelimit"`

	AppPort  string `env:"APP_PORT" envDefault:"8000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	EnableProfiling bool `env:"ENABLE_PROFILING" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// The resolution URL shapes are configuration; the env overrides exist
	// for tests and for regions Riot reshuffles between routing clusters.
	if cfg.RiotPlatformURL == "" {
		cfg.RiotPlatformURL = getPlatformAPIURL(cfg.RiotRegion)
	}
	if cfg.RiotRoutingURL == "" {
		cfg.RiotRoutingURL = getRoutingAPIURL(cfg.RiotRegion)
	}

	return cfg, nil
}

func getPlatformAPIURL(region string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(region))
}

func getRoutingAPIURL(region string) string {
	switch strings.ToUpper(region) {
	case "BR1", "LA1", "LA2", "NA1":
		return "https://americas.api.riotgames.com"
	case "EUW1", "EUN1", "TR1", "RU":
		return "https://europe.api.riotgames.com"
	case "JP1", "KR":
		return "https://asia.api.riotgames.com"
	case "OC1":
		return "https://sea.api.riotgames.com"
	default:
		return "https://americas.api.riotgames.com"
	}
}
