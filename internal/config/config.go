package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	JWTSecret   string
	CORSOrigins string

	StoreDriver   string // file | redis
	DataDir       string // file driver: snapshot directory
	RedisAddr     string // redis driver
	RedisPassword string
	RedisDB       int

	// Password for the seeded manager account, hashed at seed time.
	ManagerPassword string
}

func Load() *Config {
	// Local development reads a .env file; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StoreDriver:     getEnv("STORE_DRIVER", "file"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		ManagerPassword: getEnv("MANAGER_PASSWORD", "admin123"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set; required in every environment.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters.")
	}
	if cfg.StoreDriver != "file" && cfg.StoreDriver != "redis" {
		log.Fatalf("[FATAL] STORE_DRIVER %q is not supported (file, redis).", cfg.StoreDriver)
	}
	if cfg.ManagerPassword == "admin123" {
		log.Println("[WARN] MANAGER_PASSWORD is using the default value; set your own before going live.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
