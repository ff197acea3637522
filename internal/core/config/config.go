package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type CacheCfg struct {
	RedisAddr string
	TTL       time.Duration
	LRUSize   int
	OpTimeout time.Duration

	RedisPoolSize int
	RedisTimeout  time.Duration // read and write deadline per Redis command
}

type EventsCfg struct {
	Enabled bool
	Brokers []string
	Topic   string
	Queue   int
}

type Config struct {
	Addr     string
	LogLevel string
	Scenario string
	Cache    CacheCfg
	Events   EventsCfg
}

func FromEnv() Config {
	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		Scenario: getenv("SCENARIO", "baseline"),
		Cache: CacheCfg{
			RedisAddr: os.Getenv("REDIS_ADDR"),
			TTL:       getduration("CACHE_TTL", 10*time.Minute),
			LRUSize:   getint("CACHE_LRU_SIZE", 256),
			OpTimeout: getduration("CACHE_OP_TIMEOUT", 100*time.Millisecond),

			RedisPoolSize: getint("CACHE_REDIS_POOL_SIZE", 16),
			RedisTimeout:  getduration("CACHE_REDIS_TIMEOUT", 500*time.Millisecond),
		},
		Events: EventsCfg{
			Enabled: getbool("EVENTS_ENABLED", false),
			Brokers: splitList(getenv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getenv("KAFKA_TOPIC", "triangle-lookups"),
			Queue:   getint("EVENTS_QUEUE", 1024),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// "a:9092, b:9092" -> [a:9092 b:9092]
func splitList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
