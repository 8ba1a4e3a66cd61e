// internal/question/client.go
//
// HTTP client for the Banana question API.
// The endpoint returns JSON of the form:
//
//	{"question": "<image url>", "solution": <int>}
//
// The fetch is bounded by a timeout so a slow provider cannot stall a
// round; callers substitute Default on any error.

package question

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultAPIURL is the public Banana API endpoint.
const DefaultAPIURL = "https://marcconrad.com/uob/banana/api.php"

// Client fetches questions over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient constructs a Client for the given endpoint.
// An empty url falls back to DefaultAPIURL; timeout <= 0 gets a sane bound.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch requests one question from the API.
// Any transport, status, or decode problem is returned as an error;
// the caller decides whether to degrade to Default.
func (c *Client) Fetch(ctx context.Context) (Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Question{}, fmt.Errorf("build question request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return Question{}, fmt.Errorf("fetch question: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Question{}, fmt.Errorf("question api status %d", res.StatusCode)
	}

	var q Question
	if err := json.NewDecoder(res.Body).Decode(&q); err != nil {
		return Question{}, fmt.Errorf("decode question: %w", err)
	}
	if q.ImageURL == "" {
		return Question{}, fmt.Errorf("question api returned empty image url")
	}
	return q, nil
}
