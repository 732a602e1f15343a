package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	PlacesBase  string
	PlacesKey   string
	PlacesRPS   int
	CSEBase     string
	CSEKey      string
	CSECX       string
	UserAgent   string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		PlacesBase:  env("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesKey:   env("GOOGLE_PLACES_API_KEY", ""),
		PlacesRPS:   atoi("PLACES_RPS", 5),
		CSEBase:     env("CSE_BASE_URL", "https://www.googleapis.com/customsearch/v1"),
		CSEKey:      env("GOOGLE_CSE_API_KEY", ""),
		CSECX:       env("GOOGLE_CSE_CX", ""),
		UserAgent:   env("FETCH_USER_AGENT", "Mozilla/5.0 (compatible; smile-audit/1.0)"),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty; listing lookups will be skipped")
	}
	if c.CSEKey == "" || c.CSECX == "" {
		log.Warn().Msg("custom search credentials missing; search visibility will be skipped")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
