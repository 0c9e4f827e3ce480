package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	CacheFile string
	CacheTTL  time.Duration
	RedisAddr string // 可选，设置后用 Redis 代替文件缓存

	PostgresDSN string // 可选，设置后开启历史归档

	CronSpec  string
	PerSource int
	UserAgent string

	BasicAuthUser string
	BasicAuthPass string
}

func Load() *Config {
	// 本地开发支持 .env，文件不存在就静默跳过
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		CacheFile:     getEnv("CACHE_FILE", defaultCachePath()),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_HOURS", 12)) * time.Hour,
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		CronSpec:      getEnv("CRON_SPEC", "*/30 * * * *"),
		PerSource:     getEnvInt("NEWS_PER_SOURCE", 0),
		UserAgent:     getEnv("NEWS_USER_AGENT", ""),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	log.Printf("config loaded: port=%s cron=%s cache=%s ttl=%s", cfg.AppPort, cfg.CronSpec, cfg.CacheFile, cfg.CacheTTL)
	return cfg
}

func defaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "newsnow", "newsData.json")
	}
	return filepath.Join("data", "newsData.json")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
