package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Tiliavir/dietwatch/internal/model"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Updated  int
	Skipped  int
	Removed  int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	// UserID is always treated as synced, so an empty fetch clears its cache.
	UserID string
	DryRun bool
	Now    time.Time
	// Out receives one progress line per diet. Nil discards progress.
	Out io.Writer
}

// sameDiet compares two diets by their stored JSON form.
func sameDiet(a, b model.Diet) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}

// SyncDiets merges a freshly fetched collection into the cache. Diets of a
// synced user that the backend no longer returns are removed from the cache.
func SyncDiets(base string, fetched []model.Diet, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	byUser := map[string][]model.Diet{}
	var users []string
	addUser := func(id string) {
		if _, seen := byUser[id]; !seen {
			byUser[id] = nil
			users = append(users, id)
		}
	}
	if opts.UserID != "" {
		addUser(opts.UserID)
	}
	for _, d := range fetched {
		addUser(d.UserID)
		byUser[d.UserID] = append(byUser[d.UserID], d)
	}

	for _, userID := range users {
		uf, err := LoadUser(base, userID)
		if err != nil {
			return result, err
		}
		cached := map[string]model.Diet{}
		for _, d := range uf.Diets {
			cached[d.ID] = d
		}

		merged := make([]model.Diet, 0, len(byUser[userID]))
		kept := map[string]bool{}
		for _, d := range byUser[userID] {
			if kept[d.ID] {
				continue
			}
			kept[d.ID] = true
			merged = append(merged, d)

			old, found := cached[d.ID]
			switch {
			case !found:
				fmt.Fprintf(out, "  ✓ Imported: %s (user %s)\n", d.ID, userID)
				result.Imported++
			case sameDiet(old, d):
				fmt.Fprintf(out, "  – Skipped:  %s (unchanged)\n", d.ID)
				result.Skipped++
			default:
				fmt.Fprintf(out, "  ↑ Updated:  %s\n", d.ID)
				result.Updated++
			}
		}
		for _, d := range uf.Diets {
			if !kept[d.ID] {
				fmt.Fprintf(out, "  ✗ Removed:  %s (no longer on server)\n", d.ID)
				result.Removed++
			}
		}

		if opts.DryRun {
			continue
		}
		uf.UserID = userID
		uf.Diets = merged
		uf.SyncedAt = model.TimestampFromTime(now)
		if err := SaveUser(base, uf); err != nil {
			return result, err
		}
	}
	return result, nil
}
