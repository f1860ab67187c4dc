package genai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffmark/diffmark/genai"
)

func TestNewSuggester_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := genai.NewSuggester(context.Background(), "", "gemini-2.0-flash")
	assert.Error(t, err)

	_, err = genai.NewSuggester(context.Background(), "key", "")
	assert.Error(t, err)
}
