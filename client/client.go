// Package client implements the helpdesk API client: the authenticated
// transport, one service per operation group, and the pacing applied to
// multi-call operations.
package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/helpdesk-io/helpdesk-go/auth"
	"github.com/helpdesk-io/helpdesk-go/errors"
	"github.com/helpdesk-io/helpdesk-go/types"
)

// Backend actions. The backend routes every request through one endpoint;
// the Action query parameter selects the operation.
const (
	actionAddTicket     = "AddTicket"
	actionGetTicket     = "GetTicket"
	actionGetNotes      = "GetNotes"
	actionAddNote       = "AddNote"
	actionSearchTickets = "SearchTickets"
	actionSearchUsers   = "SearchUsers"
	actionEditTicket    = "EditTicket"
)

const headerRequestID = "X-Request-ID"

// Recorder observes completed backend exchanges. Transport failures are
// reported with status code 0.
type Recorder interface {
	ObserveRequest(action string, statusCode int, duration time.Duration)
}

// Client represents the helpdesk API client. A Client is immutable after
// construction and safe for concurrent use.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	auth       auth.Authenticator
	userAgent  string
	timeout    time.Duration
	pacing     time.Duration
	metrics    Recorder

	// Service clients
	Tickets *TicketsService
	Notes   *NotesService
	Users   *UsersService
}

// Config represents client configuration. BaseURL, APIKey, and CertPath are
// required; everything else has a default. The certificate file must exist
// and parse at construction time.
type Config struct {
	BaseURL  string
	APIKey   string
	CertPath string

	// Auth overrides how the credential rides on requests. When nil the
	// APIKey is sent as the backend's Key query parameter.
	Auth auth.Authenticator

	UserAgent string
	Timeout   time.Duration

	// HistoryPacing is the minimum spacing between the chained backend
	// calls of one history retrieval. Zero means the 1s default.
	HistoryPacing time.Duration

	Debug   bool
	Logger  resty.Logger
	Metrics Recorder
}

// NewClient creates a new helpdesk API client. It fails with a ConfigError
// before any network activity when the configuration is unusable.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, errors.NewConfigError("config", "configuration is required")
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, errors.NewConfigError("base_url", "base URL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, errors.NewConfigError("base_url", "base URL must be an absolute http(s) URL")
	}
	authenticator := config.Auth
	if authenticator == nil {
		if strings.TrimSpace(config.APIKey) == "" {
			return nil, errors.NewConfigError("api_key", "API key is required")
		}
		authenticator = auth.NewQueryKeyAuth(config.APIKey)
	}
	pool, err := loadCertPool(config.CertPath)
	if err != nil {
		return nil, err
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "helpdesk-go/1.0.0"
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	pacing := config.HistoryPacing
	if pacing == 0 {
		pacing = time.Second
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTLSClientConfig(&tls.Config{RootCAs: pool})

	if config.Debug {
		httpClient.SetDebug(true)
	}
	if config.Logger != nil {
		httpClient.SetLogger(config.Logger)
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		auth:       authenticator,
		userAgent:  userAgent,
		timeout:    timeout,
		pacing:     pacing,
		metrics:    config.Metrics,
	}

	// Initialize service clients
	client.Tickets = &TicketsService{client: client}
	client.Notes = &NotesService{client: client}
	client.Users = &UsersService{client: client}

	// Credential and correlation id ride on every request
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		client.auth.Apply(req)
		req.SetHeader(headerRequestID, uuid.NewString())
		return nil
	})

	return client, nil
}

// NewClientWithAPIKey creates a client from the three required settings.
func NewClientWithAPIKey(baseURL, apiKey, certPath string) (*Client, error) {
	return NewClient(&Config{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		CertPath: certPath,
	})
}

// BaseURL returns the configured backend endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// loadCertPool reads the PEM certificate file used for server identity
// verification.
func loadCertPool(certPath string) (*x509.CertPool, error) {
	if strings.TrimSpace(certPath) == "" {
		return nil, errors.NewConfigError("cert_path", "certificate path is required")
	}
	pem, err := os.ReadFile(certPath)
	if err != nil {
		return nil, errors.NewConfigError("cert_path", fmt.Sprintf("certificate file not readable: %v", err))
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.NewConfigError("cert_path", "no valid certificates in file")
	}
	return pool, nil
}

// do sends one backend action and decodes the JSON response into result.
// Failures split into TransportError (exchange did not complete) and
// RemoteError (backend rejected; its diagnostic text is kept verbatim).
func (c *Client) do(ctx context.Context, action, method string, params map[string]string, body, result interface{}) error {
	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("Action", action)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, "")
	if err != nil {
		if c.metrics != nil {
			c.metrics.ObserveRequest(action, 0, 0)
		}
		return errors.NewTransportError(action, c.baseURL, err)
	}
	if c.metrics != nil {
		c.metrics.ObserveRequest(action, resp.StatusCode(), resp.Time())
	}
	if !resp.IsSuccess() {
		return errors.NewRemoteError(
			resp.StatusCode(),
			backendMessage(resp.Body(), resp.Status()),
			action,
			resp.Request.Header.Get(headerRequestID),
		)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return errors.NewTransportError(action, c.baseURL, fmt.Errorf("decoding response body: %w", err))
	}
	return nil
}

// backendMessage extracts the backend's diagnostic text from a rejection
// body, falling back to the raw body and then the status line.
func backendMessage(body []byte, fallback string) string {
	var errResp types.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if msg := errResp.Text(); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return fallback
}

// validEmail reports whether s is a bare RFC 5322 address.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
