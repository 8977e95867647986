package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LexicalKeywords(t *testing.T) {
	prompt, err := Get(LexicalKeywords)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Kind}}")
	assert.Contains(t, prompt, "lower case")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("nonexistent-key")
	assert.ErrorContains(t, err, `prompt key "nonexistent-key" not found`)
}

func TestRender(t *testing.T) {
	out, err := Render(LexicalKeywords, map[string]string{"Kind": "job description"})
	require.NoError(t, err)
	assert.Contains(t, out, "Read the job description below")
	assert.NotContains(t, out, "{{")
}

func TestRender_MissingField(t *testing.T) {
	_, err := Render(LexicalKeywords, map[string]string{})
	assert.ErrorContains(t, err, "failed to render prompt")
}

func TestKeys(t *testing.T) {
	keys, err := Keys()
	require.NoError(t, err)
	assert.Contains(t, keys, LexicalKeywords)
}
