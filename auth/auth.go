// Package auth attaches the API credential to outgoing helpdesk requests.
package auth

import (
	"github.com/go-resty/resty/v2"
)

// Authenticator attaches a credential to an outgoing request. The backend
// uses static API keys; implementations differ only in where the key rides.
type Authenticator interface {
	// Apply attaches the credential to the request
	Apply(req *resty.Request)
}

// QueryKeyAuth sends the API key as a query parameter. This is the backend's
// native convention.
type QueryKeyAuth struct {
	APIKey string
	Param  string // Default: "Key"
}

// NewQueryKeyAuth creates a query-parameter API key authenticator
func NewQueryKeyAuth(apiKey string) *QueryKeyAuth {
	return &QueryKeyAuth{
		APIKey: apiKey,
		Param:  "Key",
	}
}

// Apply attaches the key to the request query string
func (a *QueryKeyAuth) Apply(req *resty.Request) {
	req.SetQueryParam(a.Param, a.APIKey)
}

// HeaderKeyAuth sends the API key as a request header, for deployments where
// a gateway strips credentials from query strings.
type HeaderKeyAuth struct {
	APIKey string
	Header string // Default: "X-API-Key"
}

// NewHeaderKeyAuth creates a header API key authenticator
func NewHeaderKeyAuth(apiKey string) *HeaderKeyAuth {
	return &HeaderKeyAuth{
		APIKey: apiKey,
		Header: "X-API-Key",
	}
}

// Apply attaches the key to the request headers
func (a *HeaderKeyAuth) Apply(req *resty.Request) {
	req.SetHeader(a.Header, a.APIKey)
}
