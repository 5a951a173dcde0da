package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable server parameters.
type Config struct {
	Addr string `json:"addr"`

	// BoardRows/BoardCols size the generated board when the server is
	// started without a board file.
	BoardRows int `json:"board_rows"`
	BoardCols int `json:"board_cols"`

	// ResetIntervalSec schedules a periodic board.Reset(); <= 0 disables it.
	ResetIntervalSec int `json:"reset_interval_sec"`

	// KeepAlivePingSec schedules periodic spectator pings; <= 0 disables it.
	KeepAlivePingSec int `json:"keep_alive_ping_sec"`

	// RateLimitPerSec/RateLimitBurst bound per-viewer flip/replace requests.
	RateLimitPerSec int `json:"rate_limit_per_sec"`
	RateLimitBurst  int `json:"rate_limit_burst"`

	// BoardFile, if non-empty, is parsed by internal/boardfile instead of
	// generating a random board at startup.
	BoardFile string `json:"board_file"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Addr:             ":8080",
		BoardRows:        4,
		BoardCols:        4,
		ResetIntervalSec: 0,
		KeepAlivePingSec: 30,
		RateLimitPerSec:  5,
		RateLimitBurst:   10,
		BoardFile:        "",
	}
}

// Load reads configuration from an optional config.json file, then applies
// environment variable overrides. Fields not set in either source retain
// their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	overrideString(&cfg.Addr, "ADDR")
	overrideInt(&cfg.BoardRows, "BOARD_ROWS")
	overrideInt(&cfg.BoardCols, "BOARD_COLS")
	overrideInt(&cfg.ResetIntervalSec, "RESET_INTERVAL_SEC")
	overrideInt(&cfg.KeepAlivePingSec, "KEEP_ALIVE_PING_SEC")
	overrideInt(&cfg.RateLimitPerSec, "RATE_LIMIT_PER_SEC")
	overrideInt(&cfg.RateLimitBurst, "RATE_LIMIT_BURST")
	overrideString(&cfg.BoardFile, "BOARD_FILE")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
