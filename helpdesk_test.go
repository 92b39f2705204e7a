package helpdesk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructionFailsFastOnBadConfig(t *testing.T) {
	client, err := NewClient(&Config{
		BaseURL:  "https://helpdesk.example.com/api",
		APIKey:   "",
		CertPath: "/etc/ssl/helpdesk.pem",
	})

	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, IsConfigError(err))
	assert.False(t, IsTransportError(err))
}

func TestNewClientWithAPIKeyValidates(t *testing.T) {
	client, err := NewClientWithAPIKey("", "key", "/etc/ssl/helpdesk.pem")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, IsConfigError(err))
}
