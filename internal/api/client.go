package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/bharatgpt/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ HTTPDoer = tls_client.HttpClient(nil)

// ClientInterface is implemented by Client and MockClient
type ClientInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Generate(ctx context.Context, prompt string) (*models.ModelOutput, error)
	GetModel() models.Model
}

// Config holds the explicit settings a Client is constructed from
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GenerationConfig is sent as generationConfig when any field is set
type GenerationConfig struct {
	Temperature     *float64
	MaxOutputTokens int
}

func (g GenerationConfig) empty() bool {
	return g.Temperature == nil && g.MaxOutputTokens <= 0
}

// Client calls the Gemini generateContent endpoint
type Client struct {
	httpClient HTTPDoer
	apiKey     string
	baseURL    string
	model      models.Model
	timeout    time.Duration
	generation GenerationConfig
	mu         sync.RWMutex
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the default TLS client
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout bounds every call. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTemperature sets generationConfig.temperature
func WithTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.generation.Temperature = &t
	}
}

// WithMaxOutputTokens sets generationConfig.maxOutputTokens
func WithMaxOutputTokens(n int) ClientOption {
	return func(c *Client) {
		c.generation.MaxOutputTokens = n
	}
}

// WithModel overrides the model named in Config
func WithModel(model models.Model) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// NewClient creates a new Client. The API key is not validated here; a
// missing key is reported by the first call.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	client := &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: cfg.BaseURL,
		model:   models.ModelFromName(cfg.Model),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			// 0 leaves the transport unbounded; WithTimeout applies per call.
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// GetModel returns the model used for requests
func (c *Client) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the model used for requests
func (c *Client) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Endpoint returns the generateContent URL for the current model
func (c *Client) Endpoint() string {
	return models.GenerateURL(c.baseURL, c.GetModel())
}

// Timeout returns the per-call timeout, or 0
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Complete sends prompt and returns the answer text
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return out.Text(), nil
}
