// Package newsapi is a client for the newsapi.org top-headlines endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/giannis84/news-favourites/internal/logging"
	"github.com/giannis84/news-favourites/internal/models"
)

const (
	DefaultBaseURL = "https://newsapi.org/v2"
	DefaultCountry = "us"
	defaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of a non-JSON error response is kept.
	maxErrorBody = 512
)

var ErrMissingAPIKey = errors.New("news api key is not configured")

// APIError is returned when the news service answers with a non-ok status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("news api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("news api: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Recorder receives request outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	NewsRequest(kind string, ok bool, elapsed time.Duration)
}

type Config struct {
	BaseURL    string
	APIKey     string
	Country    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Recorder   Recorder
}

type Client struct {
	baseURL string
	apiKey  string
	country string
	http    *http.Client
	rec     Recorder
}

// NewClient creates a Client, applying defaults for any zero Config field.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	country := cfg.Country
	if country == "" {
		country = DefaultCountry
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		country: country,
		http:    httpClient,
		rec:     cfg.Recorder,
	}
}

type headlinesResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []models.Article `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

// ByCategory returns the top headlines for a category.
func (c *Client) ByCategory(ctx context.Context, category string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("category", category)
	return c.topHeadlines(ctx, "category", params)
}

// Search returns the top headlines matching a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.topHeadlines(ctx, "search", params)
}

func (c *Client) topHeadlines(ctx context.Context, kind string, params url.Values) (articles []models.Article, err error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	defer func() {
		if c.rec != nil {
			c.rec.NewsRequest(kind, err == nil, time.Since(start))
		}
	}()

	params.Set("country", c.country)
	endpoint := c.baseURL + "/top-headlines?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading headlines response: %w", err)
	}

	var parsed headlinesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: truncate(string(body), maxErrorBody)}
		}
		return nil, fmt.Errorf("decoding headlines response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Status != "ok" {
		return nil, &APIError{StatusCode: resp.StatusCode, Code: parsed.Code, Message: parsed.Message}
	}

	if parsed.Articles == nil {
		parsed.Articles = []models.Article{}
	}

	logging.Log(ctx).Layer("newsapi").Op("TopHeadlines").Str("kind", kind).
		Int("count", len(parsed.Articles)).Int("total_results", parsed.TotalResults).
		Debug("headlines fetched")
	return parsed.Articles, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
