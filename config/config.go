package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Store driver names accepted in STORE_DRIVER.
const (
	DriverMongo      = "mongo"
	DriverSQLite     = "sqlite"
	DriverFilesystem = "filesystem"
	DriverMemory     = "memory"
	DriverS3         = "s3"
)

// EnvProduction tightens CORS and strips error detail from responses.
const EnvProduction = "production"

// App holds the process configuration, populated from the environment.
type App struct {
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	APIKey      string `envconfig:"API_KEY"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI    string `envconfig:"MONGODB_URI"`
	MongoDB     string `envconfig:"MONGODB_DATABASE" default:"stashspace"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/stashspace.db"`
	StoragePath string `envconfig:"LOCAL_STORAGE_PATH" default:"data/signups"`
	S3Bucket    string `envconfig:"S3_BUCKET_NAME"`

	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	MaxBodyBytes   int64    `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// Load reads the environment and rejects combinations the server cannot
// start with. A missing API_KEY is not fatal here; protected routes fail
// closed instead.
func Load() (App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if cfg.StoreDriver == DriverMongo && cfg.MongoURI == "" {
		return cfg, fmt.Errorf("config: MONGODB_URI is required when STORE_DRIVER is %q", DriverMongo)
	}
	if cfg.StoreDriver == DriverS3 && cfg.S3Bucket == "" {
		return cfg, fmt.Errorf("config: S3_BUCKET_NAME is required when STORE_DRIVER is %q", DriverS3)
	}
	if cfg.Production() && len(cfg.AllowedOrigins) == 0 {
		return cfg, fmt.Errorf("config: CORS_ALLOWED_ORIGINS is required in production")
	}
	return cfg, nil
}

// Production reports whether the process runs in production mode.
func (c App) Production() bool { return c.Environment == EnvProduction }

// ExposeErrors reports whether responses may carry internal error detail.
func (c App) ExposeErrors() bool { return !c.Production() }
