package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds application configuration loaded from environment variables and .env file.
type AppConfig struct {
	// HTTP listener
	Port string

	// Record store (MySQL via GORM)
	DBHost string
	DBPort int
	DBUser string
	DBPass string
	DBName string

	// Logging config
	LogLevel      string
	LogFile       string
	LogMaxSize    int // MB
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool

	// Admin authentication
	AuthJWTSecret string
	AuthAdminRole string

	// Target database access
	MongoEnabled      bool          // false selects the "not configured" MongoDB client
	ConnectTimeout    time.Duration // Upper bound for one test or one query, 0 disables
	QueryDefaultLimit int           // Row limit applied when a directive omits "limit"

	// One-shot notices
	NoticeTTL time.Duration

	// In-memory MySQL sandbox target
	SandboxMySQLEnabled  bool
	SandboxMySQLDatabase string
}

// Cfg is the global application configuration instance.
var Cfg AppConfig

// LoadConfig loads application configuration from .env file and environment variables.
func LoadConfig() error {
	err := godotenv.Load()
	if err != nil {
		// Use standard log here since logger is not initialized yet
		log.Printf("[WARN] .env file not found or cannot be loaded: %v", err)
	} else {
		log.Printf("[INFO] .env file loaded successfully")
	}

	Cfg.Port = getEnv("PORT", "8081")

	Cfg.DBHost = getEnv("DB_HOST", "127.0.0.1")
	Cfg.DBUser = getEnv("DB_USER", "root")
	Cfg.DBPass = getEnv("DB_PASS", "")
	Cfg.DBName = getEnv("DB_NAME", "dbconnmanager")
	Cfg.DBPort = getEnvInt("DB_PORT", 3306)

	Cfg.LogLevel = getEnv("LOG_LEVEL", "INFO")
	Cfg.LogFile = getEnv("LOG_FILE", "/var/log/dbconnmanager/dbconnmanager.log")
	Cfg.LogMaxSize = getEnvInt("LOG_MAX_SIZE", 10)
	Cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 3)
	Cfg.LogMaxAge = getEnvInt("LOG_MAX_AGE", 28)
	Cfg.LogCompress = getEnvBool("LOG_COMPRESS", true)

	Cfg.AuthJWTSecret = getEnv("AUTH_JWT_SECRET", "")
	Cfg.AuthAdminRole = getEnv("AUTH_ADMIN_ROLE", "admin")

	Cfg.MongoEnabled = getEnvBool("MONGO_ENABLED", true)
	Cfg.ConnectTimeout = getEnvDuration("CONNECT_TIMEOUT", 10*time.Second)
	Cfg.QueryDefaultLimit = getEnvInt("QUERY_DEFAULT_LIMIT", 20)

	Cfg.NoticeTTL = getEnvDuration("NOTICE_TTL", time.Minute)

	Cfg.SandboxMySQLEnabled = getEnvBool("SANDBOX_MYSQL_ENABLED", false)
	Cfg.SandboxMySQLDatabase = getEnv("SANDBOX_MYSQL_DATABASE", "sandbox")

	if Cfg.AuthJWTSecret == "" {
		log.Printf("[WARN] AUTH_JWT_SECRET is empty, every admin request will be rejected")
	}

	log.Printf("[INFO] Config loaded - DB: %s@%s:%d/%s, LogLevel: %s",
		Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName, Cfg.LogLevel)
	log.Printf("[INFO] Target access config - MongoEnabled: %v, ConnectTimeout: %v, DefaultLimit: %d",
		Cfg.MongoEnabled, Cfg.ConnectTimeout, Cfg.QueryDefaultLimit)

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration syntax ("15s", "1m") or a bare number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
