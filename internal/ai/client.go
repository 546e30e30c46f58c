// Package ai wraps the Gemini API for portfolio analysis and invoice
// extraction.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	apperrors "wealthfolio/internal/errors"
)

// Generator is the model boundary the advisor and extractor depend on.
// Tests substitute fakes; the production implementation is Client.
type Generator interface {
	// GenerateText returns free-form text for the prompt.
	GenerateText(ctx context.Context, system, prompt string) (string, error)
	// GenerateStructured returns JSON conforming to the schema.
	GenerateStructured(ctx context.Context, parts []*genai.Part, schema *genai.Schema) (string, error)
}

// Client calls the Gemini API. The API key is resolved per call so a key
// saved through the settings endpoint takes effect without a restart.
type Client struct {
	model string
	keyFn func() string
}

// NewClient creates a Gemini client using the given model and key resolver.
func NewClient(model string, keyFn func() string) *Client {
	return &Client{model: model, keyFn: keyFn}
}

// GenerateText implements Generator.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	return c.generate(ctx, genai.Text(prompt), config)
}

// GenerateStructured implements Generator.
func (c *Client) GenerateStructured(ctx context.Context, parts []*genai.Part, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		// Low temperature for factual extraction.
		Temperature: genai.Ptr(float32(0.1)),
	}
	contents := []*genai.Content{{Parts: parts, Role: genai.RoleUser}}
	return c.generate(ctx, contents, config)
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	key := c.keyFn()
	if key == "" {
		return "", apperrors.New(apperrors.ErrExternalService, "no Gemini API key configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrExternalService, "creating Gemini client", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrExternalService, fmt.Sprintf("calling %s", c.model), err)
	}

	text := resp.Text()
	if text == "" {
		return "", apperrors.New(apperrors.ErrExternalService, "empty response from Gemini")
	}
	return text, nil
}
