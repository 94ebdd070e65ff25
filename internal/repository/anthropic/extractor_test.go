package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopSense/domain"
)

func TestDecodeIntent_PlainJSON(t *testing.T) {
	parsed, err := decodeIntent(`{"category":"laptop","max_price":1000,"priority":"price","brand_preferences":["Dell"]}`)
	require.NoError(t, err)

	assert.Equal(t, "laptop", parsed.Category)
	assert.Equal(t, 1000.0, parsed.MaxPrice)
	assert.Equal(t, domain.PriorityPrice, parsed.Priority)
	assert.Equal(t, []string{"Dell"}, parsed.BrandPreferences)
	assert.NotNil(t, parsed.Keywords, "list fields are normalized to non-nil")
}

func TestDecodeIntent_FencedJSON(t *testing.T) {
	raw := "```json\n{\"category\":\"camera\",\"eco_friendly\":true}\n```"
	parsed, err := decodeIntent(raw)
	require.NoError(t, err)

	assert.Equal(t, "camera", parsed.Category)
	assert.True(t, parsed.EcoFriendly)
	assert.Equal(t, domain.PriorityBalanced, parsed.Priority, "missing priority defaults to balanced")
}

func TestDecodeIntent_SurroundingProse(t *testing.T) {
	raw := "Here is the intent:\n{\"category\":\"drone\"}\nLet me know if you need more."
	parsed, err := decodeIntent(raw)
	require.NoError(t, err)
	assert.Equal(t, "drone", parsed.Category)
}

func TestDecodeIntent_Garbage(t *testing.T) {
	_, err := decodeIntent("sorry, I cannot help with that")
	assert.Error(t, err)

	_, err = decodeIntent("{not json}")
	assert.Error(t, err)
}
