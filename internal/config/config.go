package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	RedisAddr   string

	WebhookURL     string
	WebhookSecret  string
	WebhookTimeout time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	MaxPayloadBytes  int64
	ContactRateLimit int
	QuoteRateLimit   int
	PickupRateLimit  int
	RateLimitWindow  time.Duration

	NotifyQueueSize   int
	NotifyWorkers     int
	NotifySendTimeout time.Duration

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultWebhookTimeout    = 5 * time.Second
	defaultSMTPPort          = 587
	defaultSMTPFrom          = "orders@palletworks.example"
	defaultMaxPayloadBytes   = 1 << 20
	defaultContactRateLimit  = 5
	defaultQuoteRateLimit    = 3
	defaultPickupRateLimit   = 3
	defaultRateLimitWindow   = time.Minute
	defaultNotifyQueueSize   = 64
	defaultNotifyWorkers     = 2
	defaultNotifySendTimeout = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags. Flags win over the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RedisAddr:         getString(lookup, "REDIS_ADDR", ""),
		WebhookURL:        getString(lookup, "WORKFLOW_WEBHOOK_URL", ""),
		WebhookSecret:     getString(lookup, "WORKFLOW_WEBHOOK_SECRET", ""),
		WebhookTimeout:    getDuration(lookup, "WORKFLOW_WEBHOOK_TIMEOUT", defaultWebhookTimeout),
		SMTPHost:          getString(lookup, "SMTP_HOST", ""),
		SMTPPort:          getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:      getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:      getString(lookup, "SMTP_PASSWORD", ""),
		SMTPFrom:          getString(lookup, "SMTP_FROM", defaultSMTPFrom),
		MaxPayloadBytes:   int64(getInt(lookup, "MAX_PAYLOAD_BYTES", defaultMaxPayloadBytes)),
		ContactRateLimit:  getInt(lookup, "CONTACT_RATE_LIMIT", defaultContactRateLimit),
		QuoteRateLimit:    getInt(lookup, "QUOTE_RATE_LIMIT", defaultQuoteRateLimit),
		PickupRateLimit:   getInt(lookup, "PICKUP_RATE_LIMIT", defaultPickupRateLimit),
		RateLimitWindow:   getDuration(lookup, "RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		NotifyQueueSize:   getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		NotifyWorkers:     getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifySendTimeout: getDuration(lookup, "NOTIFY_SEND_TIMEOUT", defaultNotifySendTimeout),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		webhookTimeoutStr  = cfg.WebhookTimeout.String()
		rateWindowStr      = cfg.RateLimitWindow.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for shared rate-limit counters")
	fs.StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "Workflow webhook endpoint")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", cfg.WebhookSecret, "Shared secret for webhook signatures")
	fs.StringVar(&webhookTimeoutStr, "webhook-timeout", webhookTimeoutStr, "Timeout for outbound webhook calls")
	fs.IntVar(&cfg.ContactRateLimit, "contact-rate", cfg.ContactRateLimit, "Contact submissions per window per client")
	fs.IntVar(&cfg.QuoteRateLimit, "quote-rate", cfg.QuoteRateLimit, "Quote submissions per window per client")
	fs.IntVar(&cfg.PickupRateLimit, "pickup-rate", cfg.PickupRateLimit, "Pickup submissions per window per client")
	fs.StringVar(&rateWindowStr, "rate-window", rateWindowStr, "Rate limit window length")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.WebhookTimeout, err = time.ParseDuration(webhookTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid webhook timeout: %w", err)
	}

	if cfg.RateLimitWindow, err = time.ParseDuration(rateWindowStr); err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("WORKFLOW_WEBHOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read webhook secret file: %w", err)
		}
		cfg.WebhookSecret = string(content)
	}

	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = defaultWebhookTimeout
	}

	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = defaultRateLimitWindow
	}

	if cfg.MaxPayloadBytes <= 0 {
		cfg.MaxPayloadBytes = defaultMaxPayloadBytes
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifySendTimeout <= 0 {
		cfg.NotifySendTimeout = defaultNotifySendTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("workflow webhook URL must be provided")
	}

	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("workflow webhook secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
