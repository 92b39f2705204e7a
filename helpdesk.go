// Package helpdesk provides a Go client for an Action-based helpdesk
// ticketing HTTP API.
//
// The client covers the backend's fixed operation set:
//   - Ticket management (create, fetch, edit, search)
//   - Ticket history retrieval (paced, paginated note fetching)
//   - Notes (internal or public)
//   - User lookup by email
//
// HTML the backend embeds in ticket descriptions and note text is
// normalized to plain text before results reach the caller.
//
// Basic usage:
//
//	client, err := helpdesk.NewClientWithAPIKey("https://helpdesk.example.com/api", "your-api-key", "/etc/ssl/helpdesk.pem")
//	if err != nil {
//		// configuration problem; nothing was sent
//	}
//	ticket, err := client.Tickets.Get(ctx, "1042")
//
// Custom configuration:
//
//	client, err := helpdesk.NewClient(&helpdesk.Config{
//		BaseURL:  baseURL,
//		APIKey:   apiKey,
//		CertPath: certPath,
//		Timeout:  10 * time.Second,
//	})
//
// Deployments that strip query credentials can send the key as a header
// instead:
//
//	client, err := helpdesk.NewClient(&helpdesk.Config{
//		BaseURL:  baseURL,
//		CertPath: certPath,
//		Auth:     helpdesk.NewHeaderKeyAuth(apiKey),
//	})
package helpdesk

import (
	"github.com/helpdesk-io/helpdesk-go/auth"
	"github.com/helpdesk-io/helpdesk-go/client"
	"github.com/helpdesk-io/helpdesk-go/errors"
)

// Client represents the helpdesk API client
type Client = client.Client

// Config represents client configuration
type Config = client.Config

// NewClient creates a new helpdesk API client with custom configuration
func NewClient(config *Config) (*Client, error) {
	return client.NewClient(config)
}

// NewClientWithAPIKey creates a new client from the three required settings
func NewClientWithAPIKey(baseURL, apiKey, certPath string) (*Client, error) {
	return client.NewClientWithAPIKey(baseURL, apiKey, certPath)
}

// Authentication helpers
var (
	// NewQueryKeyAuth creates a query-parameter API key authenticator
	NewQueryKeyAuth = auth.NewQueryKeyAuth

	// NewHeaderKeyAuth creates a header API key authenticator
	NewHeaderKeyAuth = auth.NewHeaderKeyAuth
)

// Error predicates
var (
	// IsRemoteError checks if an error is a backend rejection
	IsRemoteError = errors.IsRemoteError

	// IsNotFound checks if an error is a 404 backend rejection
	IsNotFound = errors.IsNotFound

	// IsTransportError checks if an error is a transport failure
	IsTransportError = errors.IsTransportError

	// IsTimeout checks if an error is a transport timeout
	IsTimeout = errors.IsTimeout

	// IsConfigError checks if an error is a configuration error
	IsConfigError = errors.IsConfigError

	// IsValidationError checks if an error is a local validation error
	IsValidationError = errors.IsValidationError
)

// Version information
const (
	// Version is the current client version
	Version = "1.0.0"

	// UserAgent is the default user agent string
	UserAgent = "helpdesk-go/" + Version
)
