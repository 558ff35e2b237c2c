// Package feed polls the chain for tip events and keeps the newest-first
// snapshot in a store.
package feed

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/rpc"
	"github.com/OKaluzny/sui-tips/internal/storage"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

// EventSource abstracts suix_queryEvents.
type EventSource interface {
	QueryEvents(ctx context.Context, query rpc.EventQuery, cursor *rpc.EventID, limit int, descending bool) (*rpc.EventPage, error)
}

// Config holds configuration for the poller.
type Config struct {
	EventType string // package::tipping::TipEvent
	Interval  time.Duration
	Limit     int
}

// Poller fetches the most recent tip events on a fixed interval. Each poll
// replaces the stored snapshot; a failed poll leaves it untouched.
type Poller struct {
	source EventSource
	store  storage.FeedStore
	tokens models.TokenSet
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	onUpdate func([]models.TipEvent)
}

func NewPoller(source EventSource, store storage.FeedStore, tokens models.TokenSet, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 50
	}
	return &Poller{
		source: source,
		store:  store,
		tokens: tokens,
		cfg:    cfg,
		logger: slog.Default().With("component", "feed_poller"),
	}
}

// OnUpdate registers fn to receive every new snapshot.
func (p *Poller) OnUpdate(fn func([]models.TipEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = fn
}

// Refresh runs a single poll and returns the new snapshot.
func (p *Poller) Refresh(ctx context.Context) ([]models.TipEvent, error) {
	page, err := p.source.QueryEvents(ctx, rpc.MoveEventType(p.cfg.EventType), nil, p.cfg.Limit, true)
	if err != nil {
		return nil, err
	}

	events := make([]models.TipEvent, 0, len(page.Data))
	for _, raw := range page.Data {
		ev, err := toTipEvent(raw, p.tokens)
		if err != nil {
			p.logger.Warn("skipping malformed event", "tx", raw.ID.TxDigest, "error", err)
			continue
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	if err := p.store.Replace(events); err != nil {
		return nil, errors.Wrap(err, "store feed")
	}

	p.mu.Lock()
	fn := p.onUpdate
	p.mu.Unlock()
	if fn != nil {
		fn(events)
	}
	return events, nil
}

// Start polls once immediately and then on every interval until ctx is
// canceled or the returned task is stopped.
func (p *Poller) Start(ctx context.Context) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	p.logger.Info("starting tip feed",
		"event_type", p.cfg.EventType,
		"poll_interval", p.cfg.Interval,
		"limit", p.cfg.Limit,
	)

	go p.pollLoop(ctx, t.done)
	return t
}

func (p *Poller) pollLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	events, err := p.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("poll failed", "error", err)
		return
	}
	p.logger.Debug("feed updated", "count", len(events))
}

// Task is a running poll loop.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the loop and waits for it to exit. No query is issued after
// Stop returns. Stop is safe to call more than once.
func (t *Task) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed when the loop has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
