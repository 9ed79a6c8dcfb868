package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
	Home     HomeConfig
	Payment  PaymentConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=anantha_ordering"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GeocoderConfig struct {
	BaseURL string        `env:"GEOCODER_BASE_URL, default=https://nominatim.openstreetmap.org"`
	Timeout time.Duration `env:"GEOCODER_TIMEOUT,  default=5s"`
}

// HomeConfig is the dispatch origin used for distance-based delivery charges.
// Defaults point at the Guntur kitchen.
type HomeConfig struct {
	Lat float64 `env:"HOME_LAT, default=16.3067"`
	Lon float64 `env:"HOME_LON, default=80.4365"`
}

type PaymentConfig struct {
	KeyID     string `env:"PAYMENT_KEY_ID"`
	KeySecret string `env:"PAYMENT_KEY_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
