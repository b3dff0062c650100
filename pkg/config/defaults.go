// Package config provides centralized default values for the defense simulator
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// KV Store Configuration
	KVDriver string
	KVPath   string

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int

	// Workshop Configuration
	FacilitatorUsername string
	FacilitatorPassword string
	CompletionBonus     int

	// Ops Console Configuration
	OpsPassword      string
	JWTSecret        string
	OpsTokenLifetime time.Duration

	// Ops Activity Feed
	OpsActivityInterval time.Duration
	LeaderboardSize     int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// KV Store
	KVDriver = getEnvString("KV_DRIVER", "sqlite3")
	KVPath = getEnvString("KV_PATH", "defensesim.db")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)

	// Workshop defaults match the published facilitator handbook
	FacilitatorUsername = getEnvString("FACILITATOR_USERNAME", "admin")
	FacilitatorPassword = getEnvString("FACILITATOR_PASSWORD", "workshop2024")
	CompletionBonus = getEnvInt("COMPLETION_BONUS", 50)

	// Ops Console
	OpsPassword = getEnvString("OPS_PASSWORD", "")
	JWTSecret = getEnvString("JWT_SECRET", "")
	OpsTokenLifetime = getEnvDuration("OPS_TOKEN_LIFETIME", 24*time.Hour)

	// Ops Activity Feed
	OpsActivityInterval = getEnvDuration("OPS_ACTIVITY_INTERVAL", 10*time.Second)
	LeaderboardSize = getEnvInt("LEADERBOARD_SIZE", 10)
}
