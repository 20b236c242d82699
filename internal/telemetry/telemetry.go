// Package telemetry emits best-effort usage events. An event is a single
// JSON POST, awaited for deterministic ordering but with every failure
// discarded: the pipeline never blocks progress on telemetry.
package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/tinalabs/tina/internal/branding"
	"github.com/tinalabs/tina/internal/config"
)

// Event is one usage-tracking record.
type Event struct {
	Name       string    `json:"name"`
	CLIVersion string    `json:"cli_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
	SentAt     time.Time `json:"sent_at"`
}

// NewInitEvent builds the event recorded at init-pipeline start.
func NewInitEvent(cliVersion string) Event {
	return Event{
		Name:       branding.CLIName() + ":init",
		CLIVersion: cliVersion,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		SentAt:     time.Now().UTC(),
	}
}

// Notifier submits events to the telemetry endpoint.
type Notifier struct {
	endpoint   string
	httpClient *http.Client
	disabled   bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = c
	}
}

// WithEndpoint overrides the branded telemetry endpoint.
func WithEndpoint(url string) Option {
	return func(n *Notifier) {
		n.endpoint = url
	}
}

// WithDisabled forces the notifier on or off, overriding config detection.
func WithDisabled(disabled bool) Option {
	return func(n *Notifier) {
		n.disabled = disabled
	}
}

// New creates a Notifier. Suppression is read from the TINA_TELEMETRY_DISABLED
// environment variable and the telemetry.disabled config key; options
// override both.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		endpoint:   branding.TelemetryURL(),
		httpClient: http.DefaultClient,
		disabled:   detectDisabled(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func detectDisabled() bool {
	if os.Getenv(branding.EnvVar("TELEMETRY_DISABLED")) != "" {
		return true
	}
	return config.GetBool(config.KeyTelemetryDisabled)
}

// Disabled reports whether events are suppressed.
func (n *Notifier) Disabled() bool {
	return n.disabled
}

// Record submits one event. It has a discard-error policy: transport
// failures and non-2xx responses are swallowed, and a suppressed notifier
// returns immediately.
func (n *Notifier) Record(e Event) {
	if n.disabled {
		return
	}

	body, err := json.Marshal(e)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", branding.CLIName()+"-cli/"+e.CLIVersion)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
