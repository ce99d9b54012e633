package config

import (
	"log"
	"os"
	"strings"
)

// Env holds process configuration. Loaded once at startup, read-only after.
type Env struct {
	AppAddr        string
	GinMode        string
	DBDSN          string
	APIKey         string
	JWTSecret      string
	AllowedOrigins []string
}

// LoadEnv reads configuration from the environment. The DSN and both
// secrets are mandatory: an empty API key or signing secret would leave
// every endpoint open, so the process refuses to start instead.
func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":4000"
	}

	env := Env{
		AppAddr:   appAddr,
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:     strings.TrimSpace(os.Getenv("DB_DSN")),
		APIKey:    strings.TrimSpace(os.Getenv("API_KEY")),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	if env.DBDSN == "" {
		log.Fatal("DB_DSN must be set")
	}
	if env.APIKey == "" {
		log.Fatal("API_KEY must be set")
	}
	if env.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			env.AllowedOrigins = append(env.AllowedOrigins, o)
		}
	}

	return env
}
