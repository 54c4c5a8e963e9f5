package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	Cache       CacheConfig       `yaml:"cache"`
	Listing     ListingConfig     `yaml:"listing"`
	Import      ImportConfig      `yaml:"import"`
	Admin       AdminConfig       `yaml:"admin"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url"`
	MaxSize int64  `yaml:"max_size" env-default:"20971520"`
}

// RedisConf is optional: an empty address keeps the listing cache in process.
type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"60s"`
}

type ListingConfig struct {
	PageSize int `yaml:"page_size" env-default:"12"`
}

type ImportConfig struct {
	FallbackCity      string   `yaml:"fallback_city" env-default:"Bogotá"`
	KnownCities       []string `yaml:"known_cities" env-default:"Bogotá,Chía,Cajicá,Zipaquirá,Sopó,La Calera"`
	MinPlausiblePrice int64    `yaml:"min_plausible_price" env-default:"100000"`
}

type AdminConfig struct {
	PasswordHash  string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	TokenSecret   string        `yaml:"token_secret" env:"ADMIN_TOKEN_SECRET" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"12h"`
	SessionSecret string        `yaml:"session_secret" env:"ADMIN_SESSION_SECRET"`
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

// LoadPath reads the YAML file at configPath and applies env overrides.
// An empty path reads the environment only.
func LoadPath(configPath string) (*Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config", Path: configPath, Err: os.ErrNotExist}
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FetchConfigPath resolves the config path from the flag value or CONFIG_PATH.
func FetchConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return os.Getenv("CONFIG_PATH")
}
