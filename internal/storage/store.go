// Package storage holds the client-side state the tip client keeps between
// polls.
package storage

import (
	"time"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

// FeedStore holds the latest tip feed snapshot.
type FeedStore interface {
	// Replace swaps the whole snapshot. The previous one is discarded.
	Replace(events []models.TipEvent) error
	// List returns the current snapshot in stored order.
	List() ([]models.TipEvent, error)
	// UpdatedAt is when Replace last succeeded, zero before the first one.
	UpdatedAt() time.Time
}
