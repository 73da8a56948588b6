package probe

import (
	"context"
	"strconv"
)

// Status classifies the outcome of a single probe.
type Status string

const (
	StatusOK   Status = "OK"   // HTTP 200 received
	StatusWarn Status = "WARN" // any other HTTP response received
	StatusFail Status = "FAIL" // no response obtained
)

// Result is the outcome of a single health probe.
//
// HTTPCode is 0 when no HTTP response was ever received (DNS failure,
// refused connection, timeout, TLS error); reports render it as "-".
type Result struct {
	URL       string
	Status    Status
	HTTPCode  int
	LatencyMS float64
}

// Code returns the HTTP code as report text, or the "-" sentinel when no
// response was received.
func (r Result) Code() string {
	if r.HTTPCode == 0 {
		return "-"
	}
	return strconv.Itoa(r.HTTPCode)
}

// Prober performs a single health check against a target URL.
type Prober interface {
	Probe(ctx context.Context, target string) Result
}
