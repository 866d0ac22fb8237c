package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	SimulationInterval time.Duration
	NotificationTTL    time.Duration
	AlertEmail         string
	AlertPhone         string
	AlertWorkers       int
	AllowedOrigins     []string
}

// Load reads .env (if present) and then the environment
func Load() (*Config, error) {
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables, applying defaults
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		SimulationInterval: 15 * time.Second,
		NotificationTTL:    5 * time.Second,
		AlertEmail:         getEnv("ALERT_EMAIL", "alerts@example.com"),
		AlertPhone:         getEnv("ALERT_PHONE", "+10000000000"),
		AlertWorkers:       2,
		AllowedOrigins:     []string{"*"},
	}

	var err error
	if cfg.SimulationInterval, err = getDuration("SIMULATION_INTERVAL", cfg.SimulationInterval); err != nil {
		return nil, err
	}
	if cfg.NotificationTTL, err = getDuration("NOTIFICATION_TTL", cfg.NotificationTTL); err != nil {
		return nil, err
	}

	if v := os.Getenv("ALERT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid ALERT_WORKERS %q: must be a positive integer", v)
		}
		cfg.AlertWorkers = n
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}
