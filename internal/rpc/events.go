package rpc

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// EventQuery is a suix_queryEvents filter.
type EventQuery map[string]any

// MoveEventType filters events by their Move struct type.
func MoveEventType(eventType string) EventQuery {
	return EventQuery{"MoveEventType": eventType}
}

// EventID identifies an event within a transaction.
type EventID struct {
	TxDigest string `json:"txDigest"`
	EventSeq Uint64 `json:"eventSeq"`
}

// Event is a raw event record.
type Event struct {
	ID                EventID         `json:"id"`
	PackageID         string          `json:"packageId"`
	TransactionModule string          `json:"transactionModule"`
	Sender            string          `json:"sender"`
	Type              string          `json:"type"`
	ParsedJSON        json.RawMessage `json:"parsedJson"`
	TimestampMs       Uint64          `json:"timestampMs"`
}

// EventPage is one page of query results.
type EventPage struct {
	Data        []Event  `json:"data"`
	NextCursor  *EventID `json:"nextCursor"`
	HasNextPage bool     `json:"hasNextPage"`
}

// QueryEvents returns up to limit events matching query, starting after
// cursor (nil for the first page).
func (c *Client) QueryEvents(ctx context.Context, query EventQuery, cursor *EventID, limit int, descending bool) (*EventPage, error) {
	var page EventPage
	if err := c.Call(ctx, "suix_queryEvents", &page, query, cursor, limit, descending); err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	return &page, nil
}
