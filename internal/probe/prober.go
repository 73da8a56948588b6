package probe

import (
	"context"
	"net/http"
	"time"
)

// Browser-like headers so trivial bot blocking doesn't skew the result.
const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	acceptHeader = "text/html"
)

type HTTPProber struct {
	Client *http.Client
}

func New(timeout time.Duration) *HTTPProber {
	return &HTTPProber{Client: &http.Client{Timeout: timeout}}
}

// Probe issues one GET against target. Exactly 200 maps to OK, any other
// received status to WARN carrying that code, and any transport failure to
// FAIL. A single attempt only; the client timeout is the sole resilience
// mechanism.
func (p *HTTPProber) Probe(ctx context.Context, target string) Result {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{URL: target, Status: StatusFail}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := p.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		return Result{URL: target, Status: StatusFail, LatencyMS: latency}
	}
	defer resp.Body.Close()

	status := StatusWarn
	if resp.StatusCode == http.StatusOK {
		status = StatusOK
	}
	return Result{
		URL:       target,
		Status:    status,
		HTTPCode:  resp.StatusCode,
		LatencyMS: latency,
	}
}
