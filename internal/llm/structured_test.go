package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ideaPayload struct {
	Title      string   `json:"title"`
	NextAction string   `json:"nextAction"`
	Minutes    int      `json:"estimatedMinutes"`
	Tags       []string `json:"tags"`
}

func TestExtractJSON_PlainObject(t *testing.T) {
	raw := `{"title":"Sketch a logo","nextAction":"Open the sketchbook","estimatedMinutes":30,"tags":["creative"]}`

	got, err := ExtractJSON[ideaPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sketch a logo", got.Title)
	assert.Equal(t, 30, got.Minutes)
}

func TestExtractJSON_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"title\":\"Go for a walk\",\"nextAction\":\"Put on shoes\",\"estimatedMinutes\":20}\n```"

	got, err := ExtractJSON[ideaPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go for a walk", got.Title)
	assert.Equal(t, "Put on shoes", got.NextAction)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := `Sure! Here is an idea for you:

{"title":"Call a friend","nextAction":"Find their number","estimatedMinutes":15}

Hope that helps.`

	got, err := ExtractJSON[ideaPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Call a friend", got.Title)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"title":"Fix the {placeholder} bug","nextAction":"Reproduce it","estimatedMinutes":45}`

	got, err := ExtractJSON[ideaPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Fix the {placeholder} bug", got.Title)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON[ideaPayload]("I can't help with that.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Malformed(t *testing.T) {
	_, err := ExtractJSON[ideaPayload](`{"title": "unterminated}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	raw := `{"title":"","nextAction":"x","estimatedMinutes":10}`

	_, err := ExtractJSON[ideaPayload](raw, func(p ideaPayload) error {
		if p.Title == "" {
			return fmt.Errorf("title is required")
		}
		return nil
	})
	require.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "title is required")
}
