// Package config reads all application settings from the environment.
package config

import (
	"log"
	"os"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Firebase  FirebaseConfig
	OpenAI    OpenAIConfig
	Summaries SummariesConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type FirebaseConfig struct {
	CredentialsEnv  string // env var holding base64 service-account JSON
	CredentialsFile string // fallback path to a key file
	DatabaseURL     string
	StorageBucket   string
}

type OpenAIConfig struct {
	APIKey string
}

type SummariesConfig struct {
	AnomalyPath  string
	SummaryPath  string
	PollInterval time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "dev-secret-key"),
			Expiration: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		Firebase: FirebaseConfig{
			CredentialsEnv:  "FIREBASE_CREDENTIALS",
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_PATH", "./serviceAccountKey.json"),
			DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
		},
		Summaries: SummariesConfig{
			AnomalyPath:  getEnv("ANOMALY_PATH", "anomalies"),
			SummaryPath:  getEnv("SUMMARY_PATH", "summaries/current"),
			PollInterval: parseDuration(getEnv("SUMMARY_POLL_INTERVAL", "5s"), 5*time.Second),
		},
	}
}

// Validate kills the process on configuration that cannot possibly work.
func (c *Config) Validate() {
	if c.JWT.Secret == "dev-secret-key" && c.IsProduction() {
		log.Fatal("JWT_SECRET must be set in production")
	}
	if c.Firebase.DatabaseURL == "" {
		log.Fatal("FIREBASE_DATABASE_URL must be set")
	}
	if c.Firebase.StorageBucket == "" {
		log.Fatal("FIREBASE_STORAGE_BUCKET must be set")
	}
	if os.Getenv(c.Firebase.CredentialsEnv) == "" {
		if _, err := os.Stat(c.Firebase.CredentialsFile); os.IsNotExist(err) {
			log.Fatalf("Firebase credentials not found: set %s or provide %s",
				c.Firebase.CredentialsEnv, c.Firebase.CredentialsFile)
		}
	}
	if c.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, summaries will use the fallback text")
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return defaultValue
}
