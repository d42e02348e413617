// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Recognized values for APP_ENV.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config holds every runtime setting of the application.
type Config struct {
	Env    string
	UserID string
	Store  store
	Logger logger
}

type store struct {
	DataDir string
	DBPath  string
}

type logger struct {
	LogLevel string
}

// New reads configuration from the environment. A missing .env file is
// not an error; every setting has a usable default.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("log_level", "info")

	cfg := Config{
		Env:    viper.GetString("app_env"),
		UserID: viper.GetString("nutrilog_user_id"),
		Store: store{
			DataDir: viper.GetString("nutrilog_data_dir"),
			DBPath:  viper.GetString("nutrilog_db_path"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = defaultDataDir()
	}
	if cfg.Store.DBPath == "" {
		cfg.Store.DBPath = filepath.Join(cfg.Store.DataDir, "nutrilog.db")
	}
	return &cfg
}

// CredentialDirs returns the primary and fallback directories for the
// credential tier. The primary sits under the data dir with tight
// permissions; the fallback is a world-readable location used only when
// the primary is unusable.
func (c *Config) CredentialDirs() (primary, fallback string) {
	primary = filepath.Join(c.Store.DataDir, "credentials")
	fallback = filepath.Join(os.TempDir(), "nutrilog-credentials")
	return primary, fallback
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".nutrilog"
	}
	return filepath.Join(base, "nutrilog")
}
