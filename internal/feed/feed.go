// Package feed fetches the external to-do feed used by task import.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"tasks-api/internal/models"
	"tasks-api/pkg/logger"
)

const (
	// SourceUserID is the feed user whose items are imported.
	SourceUserID = 1
	// ImportLimit is the number of feed items imported per call.
	ImportLimit = 5

	maxFeedBytes = 5 << 20
)

// Todo is one item of the feed.
type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Cache stores the raw feed body.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Client fetches the feed. Concurrent fetches of the same URL share one request.
type Client struct {
	url   string
	http  *http.Client
	cache Cache
	group singleflight.Group
}

// NewClient builds a client. cache may be nil.
func NewClient(url string, timeout time.Duration, cache Cache) *Client {
	return &Client{url: url, http: &http.Client{Timeout: timeout}, cache: cache}
}

// Fetch returns every feed item.
func (c *Client) Fetch(ctx context.Context) ([]Todo, error) {
	key := "feed:" + c.url
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			var todos []Todo
			if err := json.Unmarshal(b, &todos); err == nil {
				return todos, nil
			}
			logger.Debug(ctx, "Cached feed unreadable, refetching")
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.get(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	b := v.([]byte)
	var todos []Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, b)
	}
	return todos, nil
}

// ImportInputs fetches the feed and maps the items to import.
func (c *Client) ImportInputs(ctx context.Context) ([]models.CreateTaskInput, error) {
	todos, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ToInputs(todos, SourceUserID, ImportLimit), nil
}

// ToInputs keeps the first n items owned by feedUserID, in feed order.
func ToInputs(todos []Todo, feedUserID, n int) []models.CreateTaskInput {
	out := make([]models.CreateTaskInput, 0, n)
	for _, t := range todos {
		if len(out) == n {
			break
		}
		if t.UserID != feedUserID {
			continue
		}
		out = append(out, models.CreateTaskInput{
			Title:       t.Title,
			Description: fmt.Sprintf("Imported from JSONPlaceholder (original id: %d)", t.ID),
		})
	}
	return out
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	logger.Debug(ctx, "Feed fetched", "bytes", len(b))
	return b, nil
}
