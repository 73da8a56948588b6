package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	TargetURL string        // the one URL this run checks
	Timeout   time.Duration // probe timeout
	OutDir    string        // where report.md / report.html land
	LogDir    string        // logs directory
	Addr      string        // serve-mode bind address

	// Narration backend. An empty APIKey disables enrichment; the report
	// then carries the disabled placeholder for non-OK results.
	APIKey    string
	BaseURL   string // empty means the public OpenAI endpoint
	Model     string
	MaxTokens int
	AITimeout time.Duration

	// Serve-mode rate limiting.
	RateRPM   int
	RateBurst int
}

func FromEnv() Config {
	target := os.Getenv("TARGET_URL")
	if target == "" {
		target = "https://openai.com/"
	}

	timeout := 5 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	outDir := os.Getenv("OUT_DIR")
	if outDir == "" {
		outDir = "."
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	// Bind address (Windows-friendly default)
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-5"
	}

	maxTokens := 60
	if v := os.Getenv("AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTokens = n
		}
	}

	aiTimeout := 15 * time.Second
	if v := os.Getenv("AI_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			aiTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	rateRPM := 60
	if v := os.Getenv("RATE_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rateRPM = n
		}
	}

	rateBurst := 20
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateBurst = n
		}
	}

	return Config{
		TargetURL: target,
		Timeout:   timeout,
		OutDir:    outDir,
		LogDir:    logDir,
		Addr:      addr,
		APIKey:    os.Getenv("OPENAI_API_KEY"),
		BaseURL:   os.Getenv("OPENAI_BASE_URL"),
		Model:     model,
		MaxTokens: maxTokens,
		AITimeout: aiTimeout,
		RateRPM:   rateRPM,
		RateBurst: rateBurst,
	}
}
