package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	GatewayAddress       string
	GatewayAPIKey        string
	CheckoutSuccessURL   string
	CheckoutCancelURL    string
	TokenSecret          string
	RedisAddr            string
	KafkaBrokers         []string
	OrderEventsTopic     string
	SessionSweepInterval time.Duration
	SessionSweepAge      time.Duration
	SweepBatchSize       int
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress           = ":8080"
	defaultTokenSecret          = "change-me-in-production"
	defaultOrderEventsTopic     = "garmentshop.orders"
	defaultSessionSweepInterval = time.Minute
	defaultSessionSweepAge      = 5 * time.Minute
	defaultSweepBatchSize       = 32
	defaultWorkerPoolSize       = 4
	defaultShutdownTimeout      = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:       getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		GatewayAPIKey:        getString(lookup, "PAYMENT_GATEWAY_API_KEY", ""),
		CheckoutSuccessURL:   getString(lookup, "CHECKOUT_SUCCESS_URL", ""),
		CheckoutCancelURL:    getString(lookup, "CHECKOUT_CANCEL_URL", ""),
		TokenSecret:          getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		RedisAddr:            getString(lookup, "REDIS_ADDR", ""),
		KafkaBrokers:         splitCSV(getString(lookup, "KAFKA_BROKERS", "")),
		OrderEventsTopic:     getString(lookup, "ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),
		SessionSweepInterval: getDuration(lookup, "SESSION_SWEEP_INTERVAL", defaultSessionSweepInterval),
		SessionSweepAge:      getDuration(lookup, "SESSION_SWEEP_AGE", defaultSessionSweepAge),
		SweepBatchSize:       getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("garmentshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
		sweepIntervalStr   = cfg.SessionSweepInterval.String()
		sweepAgeStr        = cfg.SessionSweepAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayAPIKey, "gateway-key", cfg.GatewayAPIKey, "Payment gateway API key")
	fs.StringVar(&cfg.CheckoutSuccessURL, "success-url", cfg.CheckoutSuccessURL, "Redirect URL after successful payment")
	fs.StringVar(&cfg.CheckoutCancelURL, "cancel-url", cfg.CheckoutCancelURL, "Redirect URL after canceled payment")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for product cache (optional)")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Kafka brokers for order events (optional)")
	fs.StringVar(&cfg.OrderEventsTopic, "events-topic", cfg.OrderEventsTopic, "Kafka topic for order events")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between checkout session sweeps")
	fs.StringVar(&sweepAgeStr, "sweep-age", sweepAgeStr, "Minimum session age before sweeping")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum sessions per sweep batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.KafkaBrokers = splitCSV(brokersStr)

	var err error

	if cfg.SessionSweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.SessionSweepAge, err = time.ParseDuration(sweepAgeStr); err != nil {
		return nil, fmt.Errorf("invalid sweep age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SessionSweepInterval <= 0 {
		cfg.SessionSweepInterval = defaultSessionSweepInterval
	}

	if cfg.SessionSweepAge <= 0 {
		cfg.SessionSweepAge = defaultSessionSweepAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
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

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
