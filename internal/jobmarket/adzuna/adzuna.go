package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"counsellor/internal/domain"
	"counsellor/internal/httpx"
)

// Client queries the Adzuna job-search API.
type Client struct {
	baseURL        string
	appID          string
	appKey         string
	country        string
	resultsPerPage int
	maxRetries     int
	client         *http.Client
}

// Config configures the Adzuna client. Credentials are read from the
// environment variables named by AppIDEnv and AppKeyEnv.
type Config struct {
	BaseURL        string
	AppIDEnv       string
	AppKeyEnv      string
	Country        string
	ResultsPerPage int
	MaxRetries     int
	Timeout        time.Duration
}

// NewClient creates a new Adzuna client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	id := os.Getenv(cfg.AppIDEnv)
	key := os.Getenv(cfg.AppKeyEnv)
	if id == "" || key == "" {
		return nil, fmt.Errorf("missing Adzuna credentials in env %s/%s", cfg.AppIDEnv, cfg.AppKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.adzuna.com/v1/api"
	}
	if cfg.Country == "" {
		cfg.Country = "in"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 5 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		appID:          id,
		appKey:         key,
		country:        cfg.Country,
		resultsPerPage: cfg.ResultsPerPage,
		maxRetries:     cfg.MaxRetries,
		client:         &http.Client{Timeout: t},
	}, nil
}

// Name returns the identifier of this job-market implementation.
func (c *Client) Name() string { return "adzuna" }

// Country returns the region searches are filtered by.
func (c *Client) Country() string { return c.country }

type searchResponse struct {
	Count   int `json:"count"`
	Results []struct {
		SalaryMin any `json:"salary_min"`
		SalaryMax any `json:"salary_max"`
	} `json:"results"`
}

// Search returns the total number of postings for career in the configured
// country and the listings of the first result page.
func (c *Client) Search(ctx context.Context, career string) (int, []domain.Listing, error) {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("what", career)
	params.Set("content-type", "application/json")
	if c.resultsPerPage > 0 {
		params.Set("results_per_page", strconv.Itoa(c.resultsPerPage))
	}
	endpoint := fmt.Sprintf("%s/jobs/%s/search/1?%s", c.baseURL, url.PathEscape(c.country), params.Encode())

	payload, err := httpx.GetWithRetry(ctx, c.client, endpoint, http.Header{"Accept": {"application/json"}}, c.maxRetries)
	if err != nil {
		return 0, nil, err
	}
	var out searchResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return 0, nil, fmt.Errorf("decode adzuna response: %w", err)
	}
	listings := make([]domain.Listing, len(out.Results))
	for i, r := range out.Results {
		listings[i] = domain.Listing{SalaryMin: number(r.SalaryMin), SalaryMax: number(r.SalaryMax)}
	}
	return out.Count, listings, nil
}

// number keeps only JSON numbers; strings, booleans and null yield nil.
func number(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
