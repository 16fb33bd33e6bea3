package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
	TaxRate   float64
	LogFile   string
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "motortrade.db" // sqlite file in project root
	}
	secret := os.Getenv("JWT_SECRET") // may be empty; token issue fails loudly

	ttl := 24 * time.Hour
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			ttl = d
		}
	}

	taxRate := 0.08875
	if s := os.Getenv("TAX_RATE"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
			taxRate = f
		}
	}

	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DBDSN: dsn, JWTSecret: secret, TokenTTL: ttl, TaxRate: taxRate, LogFile: logFile}
	log.Printf("[config] PORT=%s DB=%s TOKEN_TTL=%s TAX_RATE=%v LOG_FILE=%s", cfg.Port, dbLabel(cfg.DBDSN), cfg.TokenTTL, cfg.TaxRate, cfg.LogFile)
	return cfg
}

// dbLabel names the configured store without echoing the DSN. A
// postgres URL carries credentials, so only the driver is logged.
func dbLabel(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite:" + dsn
}
