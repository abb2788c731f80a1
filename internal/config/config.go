package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Remote struct {
	BaseURL        string
	ClientID       string
	ClientSecret   string
	RequestTimeout time.Duration
	RPS            float64
	Burst          int
}

type Poll struct {
	Interval  time.Duration
	AutoStart bool
}

type Credential struct {
	SafetyMargin time.Duration
}

type DetailCache struct {
	Size int
	TTL  time.Duration
}

type Kafka struct {
	Brokers    []string
	Topic      string
	Partitions int
	Workers    int
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	HTTPAddr       string
	CORSOrigin     string
	MetricsBackend string

	Remote      Remote
	Poll        Poll
	Credential  Credential
	DetailCache DetailCache
	Kafka       Kafka
	Breaker     Breaker
	Retry       Retry
	Log         Log
}

// Load fatals on error; main has nothing to fall back to.
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:       envDefault("HTTP_ADDR", ":8081"),
		CORSOrigin:     envDefault("CORS_ORIGIN", "http://localhost:3000"),
		MetricsBackend: strings.ToLower(envDefault("METRICS_BACKEND", "prometheus")),

		Remote: Remote{
			BaseURL:        strings.TrimRight(envDefault("MERCHANT_API_URL", "https://merchant-api.ifood.com.br"), "/"),
			ClientID:       strings.TrimSpace(os.Getenv("CLIENT_ID")),
			ClientSecret:   strings.TrimSpace(os.Getenv("CLIENT_SECRET")),
			RequestTimeout: envDurationMS("REQUEST_TIMEOUT", 10*time.Second),
			RPS:            envFloat64("REMOTE_RPS", 5),
			Burst:          envInt("REMOTE_BURST", 5),
		},

		Poll: Poll{
			Interval:  envDurationMS("POLL_INTERVAL", 30*time.Second),
			AutoStart: envBool("POLL_AUTOSTART", true),
		},

		Credential: Credential{
			SafetyMargin: envDurationMS("TOKEN_SAFETY_MARGIN", 300*time.Second),
		},

		DetailCache: DetailCache{
			Size: envInt("DETAIL_CACHE_SIZE", 256),
			TTL:  envDurationMS("DETAIL_CACHE_TTL", time.Minute),
		},

		Kafka: Kafka{
			Brokers:    splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:      envDefault("KAFKA_TOPIC", "merchant-order-events"),
			Partitions: envInt("KAFKA_PARTITIONS", 1),
			Workers:    envInt("KAFKA_WORKERS", 2),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 1),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 3),
			Base:         envDurationMS("RETRY_BASE", 200*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 2*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},

		Log: Log{
			Level:  strings.ToLower(envDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(envDefault("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg.normalize(), nil
}

func (c Config) validate() error {
	var missing []string
	req := []struct{ key, val string }{
		{"CLIENT_ID", c.Remote.ClientID},
		{"CLIENT_SECRET", c.Remote.ClientSecret},
		{"MERCHANT_API_URL", c.Remote.BaseURL},
	}
	for _, r := range req {
		if strings.TrimSpace(r.val) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}
	return nil
}

// normalize clamps values that would otherwise break the poller or the clients.
func (c Config) normalize() Config {
	if c.Poll.Interval <= 0 {
		log.Printf("POLL_INTERVAL is %v, adjusting to 30s", c.Poll.Interval)
		c.Poll.Interval = 30 * time.Second
	}
	if c.Remote.RequestTimeout <= 0 {
		log.Printf("REQUEST_TIMEOUT is %v, adjusting to 10s", c.Remote.RequestTimeout)
		c.Remote.RequestTimeout = 10 * time.Second
	}
	if c.Credential.SafetyMargin < 0 {
		c.Credential.SafetyMargin = 0
	}
	if c.DetailCache.Size <= 0 {
		log.Printf("DETAIL_CACHE_SIZE is %d, adjusting to 1", c.DetailCache.Size)
		c.DetailCache.Size = 1
	}
	if c.Retry.Attempts < 1 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 1", c.Retry.Attempts)
		c.Retry.Attempts = 1
	}
	if c.Retry.Base <= 0 {
		c.Retry.Base = 100 * time.Millisecond
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
		c.Retry.Max = c.Retry.Base
	}
	if c.Remote.Burst < 1 {
		c.Remote.Burst = 1
	}
	if c.Kafka.Partitions < 1 {
		c.Kafka.Partitions = 1
	}
	if c.Kafka.Workers < 1 {
		c.Kafka.Workers = 1
	}
	return c
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %t: %v", k, v, def, err)
		return def
	}
	return b
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
