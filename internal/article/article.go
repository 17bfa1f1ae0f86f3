// Package article downloads article pages and extracts their main body text.
package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newscast/internal/retry"
)

// ErrNoContent signals that the page was reachable but no article text could
// be extracted from it. Callers skip the entry without advancing the cursor.
var ErrNoContent = errors.New("article: no text content extracted")

// Fetcher retrieves the plain text body of an article by its URL.
type Fetcher interface {
	FetchText(ctx context.Context, link string) (string, error)
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ReadabilityFetcher extracts article text with go-readability.
type ReadabilityFetcher struct {
	client *http.Client
	retry  retry.Config
}

func NewReadabilityFetcher(timeout time.Duration) *ReadabilityFetcher {
	return &ReadabilityFetcher{
		client: &http.Client{Timeout: timeout},
		retry:  retry.DefaultConfig(),
	}
}

// FetchText downloads link and runs readability extraction over the response.
// The download is retried with backoff; extraction is not, since a page that
// failed to parse once will fail again. Returns ErrNoContent when extraction
// yields an empty body.
func (f *ReadabilityFetcher) FetchText(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("article: invalid URL %s: %w", link, err)
	}

	var body []byte
	err = retry.WithBackoff(ctx, f.retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return fmt.Errorf("article: failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("article: request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("article: unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("article: failed to read response: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// A page that downloads fine but yields nothing readable is the same
	// "unavailable" signal as a parse failure: skip the entry.
	parsed, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNoContent, link, err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}
