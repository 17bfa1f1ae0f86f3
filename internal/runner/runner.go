// Package runner orchestrates the fetch -> select -> summarize -> render
// pipeline for one run.
package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"newscast/internal/article"
	"newscast/internal/config"
	"newscast/internal/feed"
	"newscast/internal/renderer"
	"newscast/internal/state"
	"newscast/internal/summarizer"
)

// Runner processes all configured feeds once per Run call. Feeds are handled
// sequentially in configured order; a failing feed or entry never aborts the
// run, and the progress state is saved exactly once at the end.
type Runner struct {
	cfg      *config.Config
	source   feed.Source
	articles article.Fetcher
	renderer renderer.Renderer
	tracker  *state.Tracker
	now      func() time.Time
}

func New(cfg *config.Config, source feed.Source, articles article.Fetcher, rend renderer.Renderer, tracker *state.Tracker) *Runner {
	return &Runner{
		cfg:      cfg,
		source:   source,
		articles: articles,
		renderer: rend,
		tracker:  tracker,
		now:      time.Now,
	}
}

var slugRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// slugify derives a filesystem-safe fragment from an article title.
func slugify(title string) string {
	slug := slugRegex.ReplaceAllString(title, "_")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return slug
}

// outputBase builds the artifact path (without extension) for an entry.
// Names derive from publish time and title, so reprocessing an entry after a
// lost save overwrites the same files instead of duplicating them.
func (r *Runner) outputBase(dir string, e feed.Entry) string {
	stamp := e.Published.UTC().Format("20060102T150405Z")
	if slug := slugify(e.Title); slug != "" {
		return filepath.Join(dir, stamp+"_"+slug)
	}
	return filepath.Join(dir, stamp)
}

// Run executes the full pipeline once. Every failure path degrades to "skip
// and continue": the run always completes and always attempts a final state
// save. The only early exit is context cancellation, and even that saves
// whatever progress was made first.
func (r *Runner) Run(ctx context.Context) error {
	log.Println("Run started")

	feeds := r.tracker.Load()
	dayDir := filepath.Join(r.cfg.OutputDir, r.now().Format("2006-01-02"))

	for _, feedURL := range r.cfg.Feeds {
		if ctx.Err() != nil {
			break
		}

		log.Printf("Fetching feed %s", feedURL)
		entries, err := r.source.Fetch(ctx, feedURL)
		if err != nil {
			log.Printf("WARNING: failed to fetch feed %s: %v", feedURL, err)
			continue
		}
		if len(entries) == 0 {
			log.Printf("WARNING: no entries parsed from feed %s", feedURL)
			continue
		}

		fresh := feeds.SelectNew(entries, feedURL, r.cfg.MaxArticlesPerFeed)
		log.Printf("Found %d new articles in feed %s", len(fresh), feedURL)
		if dropped := newCount(entries, feeds[feedURL]) - len(fresh); dropped > 0 {
			log.Printf("WARNING: cap %d drops %d older new articles from %s permanently", r.cfg.MaxArticlesPerFeed, dropped, feedURL)
		}

		for _, entry := range fresh {
			if ctx.Err() != nil {
				break
			}
			if err := r.processEntry(ctx, entry, dayDir); err != nil {
				log.Printf("WARNING: skipping article %s: %v", entry.Link, err)
				continue
			}
			feeds.Advance(feedURL, state.Timestamp(entry.Published))
		}
	}

	if err := r.tracker.Save(feeds); err != nil {
		log.Printf("WARNING: failed to save state: %v", err)
	}

	log.Println("Run completed")
	return ctx.Err()
}

// processEntry fetches, summarizes and renders one article. The caller
// advances the cursor only when this returns nil, so failed entries are
// retried on the next run.
func (r *Runner) processEntry(ctx context.Context, entry feed.Entry, dayDir string) error {
	log.Printf("Processing article: %s", entry.Title)

	text, err := r.articles.FetchText(ctx, entry.Link)
	if err != nil {
		return fmt.Errorf("runner: fetch failed: %w", err)
	}

	summary := summarizer.Summarize(text, r.cfg.MaxSummarySentences)
	if summary == "" {
		return fmt.Errorf("runner: empty summary for %s", entry.Link)
	}

	base := r.outputBase(dayDir, entry)
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return fmt.Errorf("runner: failed to create %s: %w", dayDir, err)
	}
	if err := os.WriteFile(base+".txt", []byte(summary), 0o644); err != nil {
		return fmt.Errorf("runner: failed to write summary: %w", err)
	}

	if err := r.renderer.Render(ctx, summary, base, r.cfg.TTS.Language); err != nil {
		return fmt.Errorf("runner: render failed: %w", err)
	}
	return nil
}

// newCount reports how many entries are strictly newer than the cursor,
// before cap truncation.
func newCount(entries []feed.Entry, last float64) int {
	n := 0
	for _, e := range entries {
		if state.Timestamp(e.Published) > last {
			n++
		}
	}
	return n
}
