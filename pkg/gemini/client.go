package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/sethvargo/go-retry"
)

const (
	defaultBaseURL             = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel               = "gemini-3-flash-preview"
	errorBodyReadLimit   int64 = 1024
	initialRetryInterval       = 500 * time.Millisecond
)

var errAPIKeyRequired = errors.New("gemini api key is required")

// Client wraps the Gemini generateContent API used for storefront AI features.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	maxAttempts int
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Gemini client from configuration.
func NewClient(cfg config.GeminiConfig, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(cfg.APIKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		apiKey:      trimmedKey,
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		maxAttempts: 3,
		httpClient:  &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		client.baseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		client.model = cfg.Model
	}
	if cfg.MaxAttempts > 0 {
		client.maxAttempts = cfg.MaxAttempts
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText asks the model for a free-form text completion.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
}

// GenerateJSON asks the model for structured output constrained by schema and
// decodes the returned JSON text into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema json.RawMessage, out any) error {
	raw, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode structured model output")
	}
	return nil
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "gemini client not configured")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal generate request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.baseURL, "/"), c.model)

	backoff := retry.WithMaxRetries(uint64(c.maxAttempts-1), retry.NewExponential(initialRetryInterval))

	var text string
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, attemptErr := c.doGenerate(ctx, url, payload)
		if attemptErr != nil {
			return attemptErr
		}
		text = result
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) doGenerate(ctx context.Context, url string, payload []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build generate request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", retry.RetryableError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute generate request"))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		wrapped := pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"generate request failed",
		)
		if retryableStatus(resp.StatusCode) {
			return "", retry.RetryableError(wrapped)
		}
		return "", wrapped
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode generate response")
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "model returned no candidates")
	}

	var sb strings.Builder
	for _, p := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
