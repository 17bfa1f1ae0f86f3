// Package state tracks per-feed progress across runs so articles are neither
// missed nor reprocessed.
//
// The cursor set maps each feed URL to the publish timestamp (UTC epoch
// seconds) of the most recently processed entry. It is loaded once at run
// start, advanced in memory as entries succeed, and flushed to disk once at
// run end. Persistence failures are never fatal: a missing or corrupt state
// file means "no history", and a failed save just repeats work next run.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"newscast/internal/feed"
)

// Feeds is the cursor set: feed URL -> last processed publish time in epoch
// seconds. A feed absent from the map has no history and all of its entries
// count as new.
type Feeds map[string]float64

// Timestamp converts a publish time to the epoch-seconds form stored in the
// cursor set.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Advance raises the cursor for feedURL to ts if ts is newer. Cursors only
// ever grow; calling Advance with an older timestamp is a no-op. Call it only
// after an entry's downstream processing succeeded, so failed entries are
// retried on the next run.
func (f Feeds) Advance(feedURL string, ts float64) {
	if ts > f[feedURL] {
		f[feedURL] = ts
	}
}

// SelectNew returns the entries published strictly after the cursor for
// feedURL, most recent first, truncated to the first max entries. max <= 0
// disables the cap.
//
// When a feed produced more new entries than max, the oldest new entries are
// dropped, not deferred: once any newer sibling is processed the cursor moves
// past them for good.
func (f Feeds) SelectNew(entries []feed.Entry, feedURL string, max int) []feed.Entry {
	sorted := make([]feed.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})

	last := f[feedURL]
	fresh := make([]feed.Entry, 0, len(sorted))
	for _, e := range sorted {
		if Timestamp(e.Published) > last {
			fresh = append(fresh, e)
		}
	}

	if max > 0 && len(fresh) > max {
		fresh = fresh[:max]
	}
	return fresh
}

// Tracker persists the cursor set to a flat JSON file.
type Tracker struct {
	path string
}

func NewTracker(path string) *Tracker {
	return &Tracker{path: path}
}

// Load reads the persisted cursor set. Any read or parse failure degrades to
// an empty set with a logged warning; it never fails.
func (t *Tracker) Load() Feeds {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARNING: failed to read state from %s: %v", t.path, err)
		}
		return Feeds{}
	}

	var feeds Feeds
	if err := json.Unmarshal(data, &feeds); err != nil {
		log.Printf("WARNING: failed to parse state from %s: %v", t.path, err)
		return Feeds{}
	}
	if feeds == nil {
		return Feeds{}
	}
	return feeds
}

// Save writes the full cursor set back to disk, replacing whatever is there.
// The write goes through a temp file and rename so a crash mid-write cannot
// leave a truncated state file behind.
func (t *Tracker) Save(feeds Feeds) error {
	data, err := json.Marshal(feeds)
	if err != nil {
		return fmt.Errorf("state: failed to encode state: %w", err)
	}

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("state: failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("state: failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("state: failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("state: failed to replace %s: %w", t.path, err)
	}
	return nil
}
