package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval matches the product's observed chat poll period.
const DefaultPollInterval = 3 * time.Second

// Poller drives the periodic refresh of a conversation's message set.
// It issues one fetch immediately on Start, then one per tick, plus
// out-of-cycle fetches requested through Refresh (after a send, or on a
// push hint). All fetches run on a single goroutine, so at most one request
// is in flight at a time; the store's sequence guard keeps late responses
// from regressing state regardless.
type Poller struct {
	api      ChatAPI
	store    *Store
	matchID  string
	interval time.Duration
	onUpdate func()

	seq       atomic.Uint64
	refreshCh chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller for one match conversation.
// onUpdate, if non-nil, is called after every applied snapshot.
func NewPoller(api ChatAPI, store *Store, matchID string, interval time.Duration, onUpdate func()) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		api:       api,
		store:     store,
		matchID:   matchID,
		interval:  interval,
		onUpdate:  onUpdate,
		refreshCh: make(chan struct{}, 1),
	}
}

// Start begins polling. Calling Start on an already-active poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels the timer and waits for the poll loop to exit.
// Stop is idempotent: calling it on an already-idle poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Refresh requests one out-of-cycle fetch without disturbing the timer
// cadence. Requests arriving while one is already pending coalesce.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// run is the poll loop. This runs in its own goroutine until Stop.
func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	// Immediate fetch so the view is populated without waiting a full tick
	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.fetch(ctx)
		case <-p.refreshCh:
			p.fetch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// fetch retrieves the full message set and applies it to the store.
// A failed fetch leaves the store stale-but-consistent; transient poll
// failures are logged, never surfaced as blocking errors.
func (p *Poller) fetch(ctx context.Context) {
	seq := p.seq.Add(1)

	resp, err := p.api.ListMessages(ctx, p.matchID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("[Poll] Fetch failed for match %s: %v", p.matchID, err)
		return
	}

	if p.store.Apply(seq, resp) && p.onUpdate != nil {
		p.onUpdate()
	}
}
