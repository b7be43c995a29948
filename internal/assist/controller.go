// Package assist implements the optional AI assistant side channel that
// overlays a chat conversation: server-authoritative on/off state,
// analysis and suggestion snapshots, and a client-owned transcript of
// turns with the assistant.
package assist

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/amoralabs/amora-chat/internal/models"
)

// API is the slice of the REST API the assistant controller depends on.
type API interface {
	AIStatus(ctx context.Context) (*models.AIStatus, error)
	ToggleAI(ctx context.Context, enabled bool) (*models.AIStatus, error)
	Analyze(ctx context.Context, matchID string) (*models.Analysis, error)
	Suggestions(ctx context.Context, matchID string) ([]string, error)
	AskAssistant(ctx context.Context, matchID, text string) (string, error)
}

// State is the assistant panel's lifecycle state.
type State int

const (
	StateDisabled State = iota
	StateEnabling
	StateEnabled
)

func (s State) String() string {
	switch s {
	case StateEnabling:
		return "enabling"
	case StateEnabled:
		return "enabled"
	default:
		return "disabled"
	}
}

// DefaultRefreshDelay is how long after a successful send the panel waits
// before re-fetching its snapshots, giving the server time to see the new
// message.
const DefaultRefreshDelay = 1500 * time.Millisecond

// Options configures an assist Controller.
type Options struct {
	// RefreshDelay overrides DefaultRefreshDelay; zero keeps the default
	RefreshDelay time.Duration

	// OnUpdate is called whenever state, snapshots or transcript change
	OnUpdate func()
}

// Controller manages the assistant side channel for one match. It runs
// independently of the base chat stream: snapshots are fetched once on
// enable and again only on explicit refresh or shortly after a successful
// send. The caller must not construct one unless an entitlement decision
// has already allowed it; the controller consumes entitlement, it never
// computes it.
type Controller struct {
	api          API
	matchID      string
	refreshDelay time.Duration
	onUpdate     func()

	mu          sync.Mutex
	state       State
	analysis    *models.Analysis
	suggestions []string
	transcript  []Turn
	pending     *time.Timer
	closed      bool
}

// New creates an assistant controller for one match conversation.
func New(api API, matchID string, opts Options) *Controller {
	delay := opts.RefreshDelay
	if delay <= 0 {
		delay = DefaultRefreshDelay
	}
	return &Controller{
		api:          api,
		matchID:      matchID,
		refreshDelay: delay,
		onUpdate:     opts.OnUpdate,
	}
}

// State returns the panel's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enabled reports whether the panel is currently enabled.
func (c *Controller) Enabled() bool {
	return c.State() == StateEnabled
}

// Toggle asks the server to switch the assistant on or off and adopts the
// state the server returns, whatever was requested. A toggle-on answered
// with ai_enabled:false (entitlement rejection) lands in StateDisabled
// with no error. On transition into StateEnabled the controller fetches
// one analysis snapshot and one suggestions list.
func (c *Controller) Toggle(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	prev := c.state
	if enabled {
		c.state = StateEnabling
	}
	c.mu.Unlock()
	c.notify()

	status, err := c.api.ToggleAI(ctx, enabled)
	if err != nil {
		log.Printf("[Assist] Toggle failed for match %s: %v", c.matchID, err)
		c.mu.Lock()
		c.state = prev
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.mu.Lock()
	wasEnabled := prev == StateEnabled
	if status.AIEnabled {
		c.state = StateEnabled
	} else {
		// Server said no; adopt silently even if we asked for on
		c.state = StateDisabled
		c.stopPendingLocked()
	}
	nowEnabled := c.state == StateEnabled
	c.mu.Unlock()
	c.notify()

	if nowEnabled && !wasEnabled {
		c.fetchSnapshots(ctx)
	}
	return nil
}

// RefreshSnapshots re-fetches the analysis and suggestions on explicit
// user action. No-op unless enabled.
func (c *Controller) RefreshSnapshots(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	c.fetchSnapshots(ctx)
}

// NotifySent schedules a snapshot refresh shortly after a successful
// message send, if the panel is open. A newer send supersedes a pending
// refresh.
func (c *Controller) NotifySent() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != StateEnabled {
		return
	}
	c.stopPendingLocked()
	c.pending = time.AfterFunc(c.refreshDelay, func() {
		if !c.Enabled() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		c.fetchSnapshots(ctx)
	})
}

// fetchSnapshots retrieves one analysis and one suggestions list.
// Failures leave the previous snapshot in place; like a failed poll tick,
// they are logged and never block the user.
func (c *Controller) fetchSnapshots(ctx context.Context) {
	analysis, err := c.api.Analyze(ctx, c.matchID)
	if err != nil {
		log.Printf("[Assist] Analysis fetch failed for match %s: %v", c.matchID, err)
	}

	suggestions, err := c.api.Suggestions(ctx, c.matchID)
	if err != nil {
		log.Printf("[Assist] Suggestions fetch failed for match %s: %v", c.matchID, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// Snapshots fully replace prior state, never merge
	if analysis != nil {
		c.analysis = analysis
	}
	if suggestions != nil {
		c.suggestions = suggestions
	}
	c.mu.Unlock()
	c.notify()
}

// Analysis returns the latest analysis snapshot, or nil before the first
// successful fetch.
func (c *Controller) Analysis() *models.Analysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analysis
}

// Suggestions returns the latest suggestion list in server order.
func (c *Controller) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.suggestions))
	copy(result, c.suggestions)
	return result
}

// Close stops any pending refresh. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopPendingLocked()
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) notify() {
	if c.onUpdate != nil {
		c.onUpdate()
	}
}
