package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fronts the upstream tool APIs. Every method returns a structured
// result document tagged with result_type; upstream failures are reported
// in the document's error field so the caller can render them, not as Go
// errors.
type Client struct {
	http *http.Client

	serperKey string
	pexelsKey string
	stripeKey string

	serperURL  string
	pexelsURL  string
	stripeURL  string
	geocodeURL string
	meteoURL   string
	mealURL    string
	redditURL  string
	hnURL      string
}

// Config carries API keys for the keyed backends. Unkeyed backends
// (weather, recipes, reddit, hackernews) work without configuration.
type Config struct {
	SerperKey string
	PexelsKey string
	StripeKey string
}

const requestTimeout = 15 * time.Second

func NewClient(cfg Config) *Client {
	return &Client{
		http:       &http.Client{Timeout: requestTimeout},
		serperKey:  cfg.SerperKey,
		pexelsKey:  cfg.PexelsKey,
		stripeKey:  cfg.StripeKey,
		serperURL:  "https://google.serper.dev",
		pexelsURL:  "https://api.pexels.com/v1",
		stripeURL:  "https://api.stripe.com/v1",
		geocodeURL: "https://geocoding-api.open-meteo.com/v1",
		meteoURL:   "https://api.open-meteo.com/v1",
		mealURL:    "https://www.themealdb.com/api/json/v1/1",
		redditURL:  "https://www.reddit.com",
		hnURL:      "https://hacker-news.firebaseio.com/v0",
	}
}

// structured builds a result document. kind is required; source is optional.
func structured(kind, source string, fields map[string]any) json.RawMessage {
	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc["result_type"] = kind
	if source != "" {
		doc["source_api"] = source
	}
	b, err := json.Marshal(doc)
	if err != nil {
		b, _ = json.Marshal(map[string]any{"result_type": kind, "error": err.Error()})
	}
	return b
}

// failure builds a result document that carries only an error.
func failure(kind, source, msg string) json.RawMessage {
	return structured(kind, source, map[string]any{"error": msg})
}

func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "minato/1.0")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, url string, headers map[string]string, form string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: HTTP %d", req.URL.Host, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.URL.Host, err)
	}
	return nil
}
