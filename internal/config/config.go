package config // package config loads application configuration from environment variables

import (
	"os" // os provides access to environment variables
	"strings"
	"time"

	"github.com/iliyamo/storage-booking/internal/utils"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// MySQLConfig holds the connection settings for the relational store.
type MySQLConfig struct {
	User         string // database username
	Pass         string // database password (optional)
	Host         string // database host address
	Port         string // database port number
	Name         string // database name
	MaxOpenConns int    // pool size
}

// MongoConfig holds the connection settings for the document store.
type MongoConfig struct {
	URL      string // mongodb:// connection string
	Database string // database name
}

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	StoreDriver    string        // mysql, mongo or memory
	MySQL          MySQLConfig   // used when StoreDriver is mysql
	Mongo          MongoConfig   // used when StoreDriver is mongo
	SecretKey      string        // seals stored API keys
	CORSOrigins    []string      // allowed origins, "*" by default
	BookingLockTTL time.Duration // upper bound on a per-unit booking lock
	AutoMigrate    bool          // run schema/index setup on serve
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Database settings
// are only required for the driver that is selected.
func Load() Config {
	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8001"),
		StoreDriver:    strings.ToLower(envStr("STORE_DRIVER", DriverMySQL)),
		SecretKey:      os.Getenv("SECRET_KEY"),
		CORSOrigins:    splitList(envStr("CORS_ORIGINS", "*")),
		BookingLockTTL: envDur("BOOKING_LOCK_TTL", 10*time.Second),
		AutoMigrate:    envBool("AUTO_MIGRATE", true),
	}

	switch cfg.StoreDriver {
	case DriverMySQL:
		cfg.MySQL = MySQLConfig{
			User:         must("DB_USER"),
			Pass:         os.Getenv("DB_PASS"), // empty allowed
			Host:         must("DB_HOST"),
			Port:         must("DB_PORT"),
			Name:         must("DB_NAME"),
			MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		}
	case DriverMongo:
		cfg.Mongo = MongoConfig{
			URL:      must("MONGO_URL"),
			Database: must("MONGO_DB"),
		}
	case DriverMemory:
	default:
		utils.Logger.Fatalf("unknown STORE_DRIVER %q (want mysql, mongo or memory)", cfg.StoreDriver)
	}

	if cfg.SecretKey == "" {
		if cfg.Env == "prod" {
			utils.Logger.Fatal("missing required env var: SECRET_KEY")
		}
		utils.Logger.Warn("SECRET_KEY not set; using an insecure development key for API key sealing")
		cfg.SecretKey = "dev-only-insecure-secret-key-0000"
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		utils.Logger.Fatalf("missing required env var: %s", key)
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
