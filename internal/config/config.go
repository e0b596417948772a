// Package config provides runtime configuration for both binaries.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/SaulT-G/skateshop/internal/obs"
)

// Gateway holds configuration for the REST gateway.
type Gateway struct {
	HTTPAddr        string
	PlatformURL     string
	PlatformAnonKey string
	RedisAddr       string // empty disables the redis product cache
	RedisPassword   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxUploadSize   int64
}

// Storefront holds configuration for the client core.
type Storefront struct {
	APIURL          string
	PlatformURL     string
	PlatformAnonKey string
	StateDir        string
	RequestTimeout  time.Duration
	SearchDebounce  time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(sec) * time.Second
}

// LoadEnv loads a .env file when present. Missing files are fine; the
// process environment wins either way.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		obs.Logger.Warn("dotenv load failed", "err", err)
	}
}

// LoadGateway collects gateway configuration from the environment.
func LoadGateway() Gateway {
	return Gateway{
		HTTPAddr:        getenv("HTTP_ADDR", ":3000"),
		PlatformURL:     getenv("PLATFORM_URL", ""),
		PlatformAnonKey: getenv("PLATFORM_ANON_KEY", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		RequestTimeout:  durenvs("REQUEST_TIMEOUT", 30),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 10),
		MaxUploadSize:   5 << 20,
	}
}

// LoadStorefront collects storefront configuration from the environment.
func LoadStorefront() Storefront {
	stateDir := getenv("STATE_DIR", "")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			stateDir = home + "/.skateshop"
		} else {
			stateDir = ".skateshop"
		}
	}
	return Storefront{
		APIURL:          getenv("API_URL", "http://localhost:3000/api"),
		PlatformURL:     getenv("PLATFORM_URL", ""),
		PlatformAnonKey: getenv("PLATFORM_ANON_KEY", ""),
		StateDir:        stateDir,
		RequestTimeout:  durenvs("REQUEST_TIMEOUT", 30),
		SearchDebounce:  300 * time.Millisecond,
	}
}
