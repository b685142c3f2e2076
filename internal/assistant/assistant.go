// Package assistant forwards free-text questions to a text-generation
// service.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	DefaultEndpoint   = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-2.5-flash"
	DefaultTimeout    = 30 * time.Second

	// FallbackAnswer is shown in place of an answer when generation fails.
	FallbackAnswer = "An error occurred while fetching the answer."
)

var ErrGeneration = errors.New("generation failed")

// GenerationError reports a failed or uninterpretable generation call.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate: %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client talks to the Gemini API through the genai SDK.
type Client struct {
	endpoint   string
	apiVersion string
	model      string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint overrides the API base URL, e.g. to point at a proxy.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/") + "/"
		}
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		apiVersion: DefaultAPIVersion,
		model:      DefaultModel,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) sdk(ctx context.Context) (*genai.Client, error) {
	if c.apiKey == "" {
		return nil, errors.New("api key is not set")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.endpoint,
			APIVersion: c.apiVersion,
		},
	})
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := c.sdk(ctx)
	if err != nil {
		return "", &GenerationError{Op: "create client", Err: err}
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &GenerationError{Op: "generate content", Err: err}
	}

	text := firstCandidateText(resp)
	if text == "" {
		return "", &GenerationError{Op: "read response", Err: errors.New("no candidate text")}
	}
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// Asker wraps a Generator with a per-call timeout and the fallback answer.
type Asker struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

func NewAsker(gen Generator, timeout time.Duration, logger *slog.Logger) *Asker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Asker{gen: gen, timeout: timeout, logger: logger}
}

// Ask returns the generated answer, or FallbackAnswer when anything goes
// wrong. It never returns an error.
func (a *Asker) Ask(ctx context.Context, question string) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("generation panicked", "panic", r)
			answer = FallbackAnswer
		}
	}()
	if a.gen == nil {
		a.logger.Warn("no generator configured")
		return FallbackAnswer
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.gen.Generate(ctx, question)
	if err != nil {
		a.logger.Error("error asking question", "err", err, "elapsed", time.Since(start))
		return FallbackAnswer
	}
	a.logger.Info("question answered", "elapsed", time.Since(start), "chars", len(text))
	return text
}
