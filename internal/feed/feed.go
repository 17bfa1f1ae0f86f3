// Package feed retrieves RSS and Atom feeds and normalizes their items into
// entries for incremental processing.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"newscast/internal/retry"
)

// Entry is one syndicated item: constructed fresh per run and discarded at
// the end of it.
type Entry struct {
	Title     string
	Link      string
	Published time.Time
}

// Source fetches the current entries of a feed, newest first.
type Source interface {
	Fetch(ctx context.Context, feedURL string) ([]Entry, error)
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// RSSSource fetches feeds over HTTP and parses them with gofeed.
type RSSSource struct {
	parser *gofeed.Parser
	retry  retry.Config
}

func NewRSSSource(timeout time.Duration) *RSSSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = userAgent
	return &RSSSource{
		parser: parser,
		retry:  retry.DefaultConfig(),
	}
}

// Fetch downloads and parses the feed at feedURL. Items without a usable
// publish or update date are stamped with the current time so they are seen
// exactly once. Entries are returned sorted by publish time descending;
// items with equal timestamps keep their feed-provided order.
func (s *RSSSource) Fetch(ctx context.Context, feedURL string) ([]Entry, error) {
	var parsed *gofeed.Feed
	err := retry.WithBackoff(ctx, s.retry, func(ctx context.Context) error {
		var err error
		parsed, err = s.parser.ParseURLWithContext(feedURL, ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("feed: failed to fetch %s: %w", feedURL, err)
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}

		var published time.Time
		switch {
		case item.PublishedParsed != nil:
			published = item.PublishedParsed.UTC()
		case item.UpdatedParsed != nil:
			published = item.UpdatedParsed.UTC()
		default:
			published = time.Now().UTC()
		}

		entries = append(entries, Entry{
			Title:     item.Title,
			Link:      item.Link,
			Published: published,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Published.After(entries[j].Published)
	})

	return entries, nil
}
