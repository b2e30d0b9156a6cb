package formrelay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
)

const (
	subjectField             = "_subject"
	errorBodyReadLimit int64 = 1024
)

var errEndpointRequired = errors.New("form relay endpoint is required")

// Client posts form submissions to a Formspree-style relay endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
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

// NewClient builds the relay client from configuration.
func NewClient(cfg config.FormRelayConfig, opts ...Option) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errEndpointRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Submission is a single named form post. Fields are sent urlencoded with the
// subject in the relay's reserved _subject field.
type Submission struct {
	Subject string
	Fields  map[string]string
}

// Submit posts the submission and treats any 2xx response as accepted.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "form relay client not configured")
	}
	if strings.TrimSpace(sub.Subject) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "submission subject is required")
	}

	form := url.Values{}
	form.Set(subjectField, sub.Subject)

	keys := make([]string, 0, len(sub.Fields))
	for key := range sub.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		form.Set(key, sub.Fields[key])
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build relay request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute relay request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"relay request failed",
		)
	}
	return nil
}
