package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	ChanneliAuthURL      string
	ChanneliClientID     string
	ChanneliClientSecret string
	ChanneliRedirectURL  string
	ChanneliState        string
	UploadDir            string
	FrontendURL          string
	LogDir               string
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		ChanneliAuthURL:      getEnv("CHANNELI_AUTH_URL", "https://channeli.in/oauth/authorise"),
		ChanneliClientID:     getEnv("CHANNELI_CLIENT_ID", ""),
		ChanneliClientSecret: getEnv("CHANNELI_CLIENT_SECRET", ""),
		ChanneliRedirectURL:  getEnv("CHANNELI_REDIRECT_URL", "http://localhost:8080/login/channeli/callback"),
		ChanneliState:        getEnv("CHANNELI_STATE", "review-system"),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
		LogDir:               getEnv("LOG_DIR", "logs"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
