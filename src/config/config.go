package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta             = "beta"
	Dev              = "dev"
)

type CorkboardConfig struct {
	Env      Environment
	Addr     string
	BaseUrl  string
	LogLevel zerolog.Level

	Auth     AuthConfig
	Postgres PostgresConfig
}

type AuthConfig struct {
	CookieDomain string
	CookieSecure bool
}

type PostgresConfig struct {
	User     string
	Password string
	Hostname string
	Port     int
	DbName   string

	LogLevel tracelog.LogLevel
	MinConn  int32
	MaxConn  int32
}

func (info PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s", info.User, info.Password, info.Hostname, info.Port, info.DbName)
}

var Config = CorkboardConfig{
	Env:      Environment(env("CORKBOARD_ENV", string(Dev))),
	Addr:     env("CORKBOARD_ADDR", "localhost:9001"),
	BaseUrl:  env("CORKBOARD_BASE_URL", "http://localhost:9001"),
	LogLevel: zerolog.InfoLevel,

	Auth: AuthConfig{
		CookieDomain: env("CORKBOARD_COOKIE_DOMAIN", ""),
		// Browsers refuse Secure cookies over plain http, so only
		// enforce it outside local dev.
		CookieSecure: Environment(env("CORKBOARD_ENV", string(Dev))) != Dev,
	},

	Postgres: PostgresConfig{
		User:     env("CORKBOARD_DB_USER", "corkboard"),
		Password: env("CORKBOARD_DB_PASSWORD", "password"),
		Hostname: env("CORKBOARD_DB_HOST", "localhost"),
		Port:     envInt("CORKBOARD_DB_PORT", 5432),
		DbName:   env("CORKBOARD_DB_NAME", "corkboard"),

		LogLevel: tracelog.LogLevelWarn,
		MinConn:  2,
		MaxConn:  20,
	},
}

func env(name string, def string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return def
}

func envInt(name string, def int) int {
	if val := os.Getenv(name); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			panic(fmt.Errorf("bad value for %s: %w", name, err))
		}
		return i
	}
	return def
}
