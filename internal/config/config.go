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
	DBDriver      string   // Database driver: mysql, postgres or sqlite
	DBUser        string   // Database user
	DBPassword    string   // Database password
	DBHost        string   // Database host
	DBPort        string   // Database port
	DBName        string   // Database name
	DBPath        string   // SQLite database file
	JWTSecret     string   // JWT secret key
	RedisAddr     string   // Redis server address, empty disables caching
	RedisPass     string   // Redis password
	RedisDB       int      // Redis database number
	UploadDir     string   // Directory for issue images
	CORSOrigins   []string // Allowed browser origins
	AdminEmail    string   // Seeded administrator email
	AdminPassword string   // Seeded administrator password
	AdminName     string   // Seeded administrator name
	IsProd        bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:       getEnv("APP_PORT", "3000"),             // Application port
		DBDriver:      getEnv("DB_DRIVER", "mysql"),           // Database driver
		DBUser:        os.Getenv("DB_USER"),                   // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),               // Database password
		DBHost:        os.Getenv("DB_HOST"),                   // Database host
		DBPort:        os.Getenv("DB_PORT"),                   // Database port
		DBName:        os.Getenv("DB_NAME"),                   // Database name
		DBPath:        getEnv("DB_PATH", "civic_reports.db"),  // SQLite file
		JWTSecret:     os.Getenv("JWT_SECRET"),                // JWT secret key
		RedisAddr:     os.Getenv("REDIS_ADDR"),                // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:       redisDB,                                // Redis database number
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),        // Image directory
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")), // Allowed origins
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@sih.com"), // Default admin email
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),   // Default admin password
		AdminName:     getEnv("ADMIN_NAME", "Admin User"),     // Default admin name
		IsProd:        os.Getenv("IS_PROD") == "true",         // Is production environment
	}
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
