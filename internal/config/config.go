package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Redis  RedisConfig  `yaml:"redis"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: ":8080"},
		OpenAI: OpenAIConfig{TimeoutSeconds: 30},
		Redis:  RedisConfig{TTLSeconds: 3600},
	}
}

// Load reads config/base.yaml plus an optional CONFIG_ENV overlay
// (e.g. config/production.yaml), then applies environment overrides.
// A missing config directory is fine; defaults plus environment are
// enough to run.
func Load() *Config {
	cfg := defaults()

	configDir := getEnv("CONFIG_DIR", "config")
	loadYAML(filepath.Join(configDir, "base.yaml"), &cfg)

	if env := os.Getenv("CONFIG_ENV"); env != "" && env != "base" {
		loadYAML(filepath.Join(configDir, fmt.Sprintf("%s.yaml", env)), &cfg)
	}

	overrideFromEnv(&cfg)
	return &cfg
}

func loadYAML(path string, cfg *Config) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Fatalf("failed to read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Fatalf("failed to parse %s: %v", path, err)
	}
}

// overrideFromEnv applies environment variables, which take priority
// over everything in the yaml files.
func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		cfg.OpenAI.BaseURL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = n
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
