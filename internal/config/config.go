package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// built once in main and passed into constructors; nothing else reads
// os.Getenv after startup.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string

	GithubAPIURL       string
	GithubClientID     string
	GithubClientSecret string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := &Config{
		Port:               os.Getenv("API_PORT"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDatabase:      os.Getenv("MONGO_DATABASE"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GithubAPIURL:       os.Getenv("GITHUB_API_URL"),
		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GithubAPIURL == "" {
		cfg.GithubAPIURL = "https://api.github.com"
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	if cfg.MongoDatabase == "" {
		return nil, fmt.Errorf("MONGO_DATABASE is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}
