package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type OpenAI struct {
	// APIKey is checked per request so a misconfigured deployment
	// answers with a clear 500 instead of refusing to boot.
	APIKey      string  `env:"OPENAI_API_KEY"`
	Model       string  `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL     string  `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	Temperature float32 `yaml:"model_temperature" env:"MODEL_TEMPERATURE" env-default:"0.7"`
	TokenBudget int     `yaml:"token_budget" env:"TOKEN_BUDGET" env-default:"3500"`
}

type Store struct {
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL"`
	RedisEndpoint string `yaml:"redis_endpoint" env:"REDIS_ENDPOINT"`
}

type Auth struct {
	AuthURL string `yaml:"auth_url" env:"AUTH_URL"`
	AnonKey string `yaml:"auth_anon_key" env:"AUTH_ANON_KEY"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

type Config struct {
	OpenAI OpenAI `yaml:"openai"`
	Store  Store  `yaml:"store"`
	Auth   Auth   `yaml:"auth"`
	Server Server `yaml:"server"`
}

func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
