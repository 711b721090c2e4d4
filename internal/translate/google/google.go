package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"counsellor/internal/httpx"
)

// Client calls the public Google Translate endpoint used by browser widgets.
type Client struct {
	baseURL    string
	maxRetries int
	client     *http.Client
}

// Config configures the translation client.
type Config struct {
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
}

// NewClient creates a new translation client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translate.googleapis.com"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		client:     &http.Client{Timeout: t},
	}
}

// Name returns the identifier of this translator implementation.
func (c *Client) Name() string { return "google" }

// Translate converts text from source ("auto" detects it) to target.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if source == "" {
		source = "auto"
	}
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)
	endpoint := fmt.Sprintf("%s/translate_a/single?%s", c.baseURL, params.Encode())

	payload, err := httpx.GetWithRetry(ctx, c.client, endpoint, nil, c.maxRetries)
	if err != nil {
		return "", err
	}
	return parseSegments(payload)
}

// parseSegments joins the translated sentences of a response shaped like
// [[["Hello","Hola",...],["world","mundo",...]], null, "es", ...].
func parseSegments(payload []byte) (string, error) {
	var root []any
	if err := json.Unmarshal(payload, &root); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}
	if len(root) == 0 {
		return "", errors.New("empty translation response")
	}
	segments, ok := root[0].([]any)
	if !ok {
		return "", errors.New("unexpected translation response shape")
	}
	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no translation returned")
	}
	return b.String(), nil
}
