package narrate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/healthreport/internal/probe"
)

// Fixed report lines; the renderer emits these verbatim.
const (
	PlaceholderHealthy  = "No AI summary needed for healthy site."
	PlaceholderDisabled = "AI summary disabled (no API key found)"
	PlaceholderEmpty    = "AI did not return any summary text."
)

const (
	defaultEndpoint  = "https://api.openai.com/v1"
	defaultModel     = "gpt-5"
	defaultMaxTokens = 60
	defaultTimeout   = 15 * time.Second
)

// Narrator asks a chat-completions endpoint to explain a non-OK probe
// result. It never fails a run: every error path degrades to a line in the
// report.
type Narrator struct {
	APIKey    string
	Endpoint  string // base URL, e.g. https://api.openai.com/v1
	Model     string
	MaxTokens int
	Client    *http.Client
}

type Options struct {
	APIKey    string
	Endpoint  string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func New(o Options) *Narrator {
	if o.Endpoint == "" {
		o.Endpoint = defaultEndpoint
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Narrator{
		APIKey:    o.APIKey,
		Endpoint:  strings.TrimRight(o.Endpoint, "/"),
		Model:     o.Model,
		MaxTokens: o.MaxTokens,
		Client:    &http.Client{Timeout: o.Timeout},
	}
}

// Enabled reports whether a completion backend is configured. It is the
// capability predicate resolved once at startup; the narrator makes no
// network calls while false.
func (n *Narrator) Enabled() bool {
	return n != nil && n.APIKey != ""
}

// Narrate returns the summary line for res. Healthy results short-circuit
// to a fixed line even when the backend is configured and reachable.
func (n *Narrator) Narrate(ctx context.Context, res probe.Result) string {
	if res.Status == probe.StatusOK {
		return PlaceholderHealthy
	}
	if !n.Enabled() {
		return PlaceholderDisabled
	}

	prompt := fmt.Sprintf(
		"The website %s returned status '%s' with HTTP code %s. Write a short, clear summary explaining what this means.",
		res.URL, res.Status, res.Code(),
	)
	text, err := n.complete(ctx, prompt)
	if err != nil {
		return "AI summary error: " + err.Error()
	}
	if text == "" {
		return PlaceholderEmpty
	}
	return text
}
