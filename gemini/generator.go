package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var _ commitsuggest.Generator = (*Generator)(nil)

// Generator implements commitsuggest.Generator using Google Gemini.
type Generator struct {
	client  GenerativeClient
	model   string
	timeout time.Duration
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTimeout bounds each API call. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.timeout = d
	}
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client GenerativeClient, model string, opts ...GeneratorOption) *Generator {
	if model == "" {
		model = DefaultModel
	}
	g := &Generator{client: client, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends prompt as a single user message and returns the response text.
// Failures are reported once; there are no retries.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := []*Content{{
		Parts: []*Part{{Text: prompt}},
	}}

	resp, err := g.client.GenerateContent(ctx, g.model, contents, BuildConfig())
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", commitsuggest.ErrInference, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: gemini: returned nil response", commitsuggest.ErrInference)
	}

	return resp.Text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *GenerateContentConfig {
	temp := float32(0.2)
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: "You write git commit messages. Reply only with the requested messages, without commentary.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "text/plain",
	}
}

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

// Content represents a message in a Gemini conversation.
type Content struct {
	Parts []*Part
}

// Part represents a part of a message.
type Part struct {
	Text string
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction *Content
	Temperature       *float32
	ResponseMIMEType  string
}

// GenerateContentResponse holds the response from content generation.
type GenerateContentResponse struct {
	Text string
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, model, contents, config)
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}
