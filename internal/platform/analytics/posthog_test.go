package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledClientIsNoop(t *testing.T) {
	c := NewClient("", "", nil)

	assert.False(t, c.Enabled())
	assert.NotPanics(t, func() {
		c.Capture(42, "workspace_created", map[string]any{"k": "v"})
		c.Close()
	})

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}
