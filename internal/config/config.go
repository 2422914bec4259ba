package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // the restaurant zone must resolve on hosts without a zone database

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the server. Feature settings
// (cache, rate limit, media) have their own loaders with lenient defaults.
type Config struct {
	Env         string        // application environment (dev, test, prod)
	Port        string        // HTTP port to listen on
	DBDriver    string        // mysql | postgres | sqlite | memory
	DBDSN       string        // full DSN; built from the DB_* parts for mysql when empty
	JWTSecret   string        // secret used to sign session tokens
	SessionTTL  time.Duration // fixed admin session window
	BcryptCost  int           // bcrypt cost for password hashing
	RabbitURL   string        // AMQP URL; empty disables reservation events
	EventLog    string        // file the reservation consumer appends to
	TimeZone    string        // restaurant time zone, used for reservation dates
	CORSOrigins []string
}

// Dev reports whether the server runs in development mode.
func (c Config) Dev() bool { return c.Env == "dev" }

// Location resolves TimeZone, falling back to UTC when the zone database
// does not know it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads .env (if present) and the environment. Missing required
// variables are fatal.
func Load() Config {
	_ = godotenv.Load()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment, collecting every
// missing or malformed variable into one error.
func FromEnv() (Config, error) {
	var errs []error
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			errs = append(errs, fmt.Errorf("missing required env var: %s", key))
		}
		return v
	}
	mustInt := func(key string) int {
		s := must(key)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid int for %s: %q", key, s))
		}
		return n
	}

	cfg := Config{
		Env:        must("APP_ENV"),
		Port:       getenv("APP_PORT", "8080"),
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBDSN:      os.Getenv("DB_DSN"),
		JWTSecret:  must("JWT_SECRET"),
		SessionTTL: envDur("SESSION_TTL", time.Hour),
		BcryptCost: mustInt("BCRYPT_COST"),
		RabbitURL:  os.Getenv("RABBITMQ_URL"),
		EventLog:   getenv("RESERVATION_LOG", "logs/reservations.log"),
		TimeZone:   getenv("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
	}
	cfg.CORSOrigins = envList("CORS_ORIGINS", "*")

	switch cfg.DBDriver {
	case "memory":
	case "mysql":
		if cfg.DBDSN == "" {
			cfg.DBDSN = MySQLDSN(must("DB_USER"), os.Getenv("DB_PASS"), must("DB_HOST"), must("DB_PORT"), must("DB_NAME"))
		}
	case "postgres", "pgx", "sqlite", "sqlite3":
		must("DB_DSN")
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return cfg, errors.Join(errs...)
}

// StoreFromEnv reads only the database settings, for tools that do not
// serve HTTP and so need none of the server's required variables.
func StoreFromEnv() (driver, dsn string) {
	driver = strings.ToLower(getenv("DB_DRIVER", "mysql"))
	dsn = os.Getenv("DB_DSN")
	if driver == "mysql" && dsn == "" && os.Getenv("DB_HOST") != "" {
		dsn = MySQLDSN(os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_HOST"), getenv("DB_PORT", "3306"), os.Getenv("DB_NAME"))
	}
	return driver, dsn
}

// MySQLDSN builds a go-sql-driver DSN.
// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
func MySQLDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC", auth, host, port, name)
}
