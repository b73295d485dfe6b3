package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	Addr           string
	AllowedOrigins []string
	ClockTime      time.Duration
	MatchInterval  time.Duration
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// loadConfig reads flags from args; each flag defaults to its environment
// variable, then to a built-in value.
func loadConfig(args []string) (config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	clock := fs.Duration("clock", getenvDuration("CHESS_CLOCK_SECONDS", 600*time.Second), "time per side")
	interval := fs.Duration("match-interval", getenvDuration("CHESS_MATCH_INTERVAL", time.Second), "matchmaking tick")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg := config{
		Addr:          *addr,
		ClockTime:     *clock,
		MatchInterval: *interval,
	}
	for _, o := range strings.Split(*origins, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		// CORS is served with credentials, which browsers refuse for "*".
		if o == "*" {
			return config{}, fmt.Errorf("allowed origins: wildcard %q cannot be used with credentials, list origins explicitly", o)
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
	}
	return cfg, nil
}
