package galeri24

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// SourceName is the source identifier reported in response metadata.
const SourceName = "galeri24.co.id"

// DefaultURL is the upstream price page.
const DefaultURL = "https://galeri24.co.id/harga-emas"

// Client fetches and parses the Galeri24 price page. It implements
// ports.PriceSource.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a new Galeri24 client with a bounded fetch
// timeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}

	http := resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language": "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7",
			"Cache-Control":   "no-cache",
		})

	return &Client{
		http: http,
		url:  url,
	}
}

// Fetch downloads the raw page content. Timeouts, connection errors
// and non-2xx statuses surface as FetchError; nothing is retried
// here.
func (c *Client) Fetch(ctx context.Context, scope string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, &models.FetchError{URL: c.url, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &models.FetchError{URL: c.url, StatusCode: resp.StatusCode()}
	}

	return resp.Body(), nil
}

// Parse turns raw page content into a snapshot.
func (c *Client) Parse(raw []byte, now time.Time) (*models.Snapshot, error) {
	return Parse(raw, now)
}

// Name returns the source identifier.
func (c *Client) Name() string { return SourceName }
