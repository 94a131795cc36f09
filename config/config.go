package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBURL         string
	JWTSecret     string
	TokenTTL      time.Duration
	LogLevel      string
	LogFile       string
	CORSOrigins   []string
	AdminUsername string
	AdminPassword string
}

// App est la configuration chargée au démarrage, lue par les handlers et le middleware
var App Config

// Load lit le fichier .env s'il existe puis les variables d'environnement.
// Le fichier .env est facultatif: en production tout vient de l'environnement.
func Load() (Config, error) {
	envFileErr := godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", ":8080"),
		GinMode:       getenv("GIN_MODE", "release"),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DBURL:         os.Getenv("DB_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		CORSOrigins:   splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	hours, err := strconv.Atoi(getenv("TOKEN_TTL_HOURS", "72"))
	if err != nil || hours <= 0 {
		return Config{}, errors.Errorf("TOKEN_TTL_HOURS must be a positive integer, got %q", os.Getenv("TOKEN_TTL_HOURS"))
	}
	cfg.TokenTTL = time.Duration(hours) * time.Hour

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBURL == "" {
			if envFileErr != nil {
				return Config{}, errors.Wrap(envFileErr, "DB_URL is not set and no .env file could be loaded")
			}
			return Config{}, errors.New("DB_URL is required when DB_DRIVER=postgres")
		}
	case DriverSQLite:
		if cfg.DBURL == "" {
			cfg.DBURL = "blog.db"
		}
	default:
		return Config{}, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	App = cfg
	return cfg, nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
