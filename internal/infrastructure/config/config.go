package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	SessionTTL time.Duration `env:"SESSION_TTL, default=720h"`
	ResetTTL   time.Duration `env:"RESET_TTL,   default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	APILimit  int64         `env:"RATE_LIMIT_API,         default=100"`
	AuthLimit int64         `env:"RATE_LIMIT_AUTH,        default=20"`
	Window    time.Duration `env:"RATE_LIMIT_WINDOW,      default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
