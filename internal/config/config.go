package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string   // Application port
	DBUser        string   // Database user
	DBPassword    string   // Database password
	DBHost        string   // Database host
	DBPort        string   // Database port
	DBName        string   // Database name
	RedisAddr     string   // Redis server address
	RedisPass     string   // Redis password
	RedisDB       int      // Redis database number
	AdminEmail    string   // Seeded administrator email
	AdminPassword string   // Seeded administrator password
	StaticDir     string   // Directory holding the SPA shell (optional)
	CORSOrigins   []string // Allowed browser origins
	IsProd        bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	var origins []string
	// CORS_ORIGINS is a comma-separated list of allowed origins
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),                      // Application port
		DBUser:        os.Getenv("DB_USER"),                            // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),                        // Database password
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),                  // Database host
		DBPort:        getEnv("DB_PORT", "3306"),                       // Database port
		DBName:        os.Getenv("DB_NAME"),                            // Database name
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),          // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                         // Redis password
		RedisDB:       redisDB,                                         // Redis database number
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@storefront.local"), // Default admin email
		AdminPassword: getEnv("ADMIN_PASSWORD", "changeme123"),         // Default admin password
		StaticDir:     os.Getenv("STATIC_DIR"),                         // SPA shell directory
		CORSOrigins:   origins,                                         // Allowed browser origins
		IsProd:        os.Getenv("IS_PROD") == "true",                  // Is production environment
	}
}

// getEnv returns the environment variable value or a fallback if unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v // Use the configured value
	}
	return fallback // Fall back to the default
}
