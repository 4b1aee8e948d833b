package somweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudURL(t *testing.T) {
	assert.Equal(t, "https://1234abcd.somweb.world", CloudURL("1234abcd"))
}

func TestNewClientFromUDI(t *testing.T) {
	c, err := NewClientFromUDI("1234abcd", "user", "password")
	require.NoError(t, err)
	assert.Equal(t, "https://1234abcd.somweb.world", c.BaseURL())
}

func TestNewClientFromUDI_EmptyUDI(t *testing.T) {
	_, err := NewClientFromUDI("", "user", "password")
	assert.Error(t, err)
}
