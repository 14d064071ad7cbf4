package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	assert.Equal(t, "", Of(""))
	assert.Len(t, Of("token-1"), 12)
	assert.Equal(t, Of("token-1"), Of("token-1"))
	assert.NotEqual(t, Of("token-1"), Of("token-2"))
	assert.NotContains(t, Of("token-1"), "token")
}
