package auth

import (
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

func TestQueryKeyAuth(t *testing.T) {
	a := NewQueryKeyAuth("secret")
	req := resty.New().R()

	a.Apply(req)

	assert.Equal(t, "secret", req.QueryParam.Get("Key"))
	assert.Empty(t, req.Header.Get("X-API-Key"))
}

func TestQueryKeyAuthCustomParam(t *testing.T) {
	a := &QueryKeyAuth{APIKey: "secret", Param: "ApiKey"}
	req := resty.New().R()

	a.Apply(req)

	assert.Equal(t, "secret", req.QueryParam.Get("ApiKey"))
}

func TestHeaderKeyAuth(t *testing.T) {
	a := NewHeaderKeyAuth("secret")
	req := resty.New().R()

	a.Apply(req)

	assert.Equal(t, "secret", req.Header.Get("X-API-Key"))
	assert.Empty(t, req.QueryParam.Get("Key"))
}
