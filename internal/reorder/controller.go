package reorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	tferr "github.com/talentflow/talentflow/internal/errors"
)

var (
	// ErrMoveInProgress is returned by RequestMove while an earlier move is
	// still waiting on the backend. Moves are serialized, never queued.
	ErrMoveInProgress = errors.New("a move is already awaiting acknowledgment")

	// ErrMoveResolved is returned when committing a move that was rolled back.
	ErrMoveResolved = errors.New("move was already rolled back")

	// ErrForeignMove is returned when committing a move issued by another controller.
	ErrForeignMove = errors.New("move does not belong to this controller")
)

// rollbackTimeout bounds the reload after a failed commit. The reload runs
// detached from the commit's context so a cancelled commit still restores
// the authoritative order.
const rollbackTimeout = 10 * time.Second

// Item is anything with a stable identity. Payload fields are irrelevant to ordering.
type Item interface {
	ItemID() string
}

// Source is the authoritative backend for an ordered collection.
type Source[T Item] interface {
	// Fetch returns the authoritative ordering.
	Fetch(ctx context.Context) ([]T, error)
	// Commit durably applies a move that is already visible locally.
	Commit(ctx context.Context, move PendingMove[T]) error
}

// State is the lifecycle of a PendingMove.
type State int

const (
	StateIdle State = iota
	StateApplied
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateApplied:
		return "applied"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateRolledBack
}

// PendingMove describes a move applied optimistically and awaiting the backend.
type PendingMove[T Item] struct {
	// Item is the moved item.
	Item T
	// Target is the item that sat at To before the move. Backends that
	// address positions by their own ordering use it to translate To.
	Target T
	From   int
	To     int
	// Seq is the controller sequence number the move was issued under.
	Seq uint64

	owner    *Controller[T]
	state    State
	inFlight bool
}

// ItemID returns the moved item's id.
func (m *PendingMove[T]) ItemID() string {
	return m.Item.ItemID()
}

// State returns the move's current lifecycle state.
func (m *PendingMove[T]) State() State {
	m.owner.mu.Lock()
	defer m.owner.mu.Unlock()
	return m.state
}

// Controller owns one ordered collection. All mutation goes through
// RequestMove and Load; readers get copies.
type Controller[T Item] struct {
	source Source[T]
	logger *slog.Logger

	mu      sync.Mutex
	items   []T
	pending *PendingMove[T]
	// seq is the latest sequence number issued to a move or a load.
	// Results carrying an older number are stale and do not touch items.
	seq uint64
}

// Option configures a Controller.
type Option[T Item] func(*Controller[T])

// WithLogger sets the logger used to report failed commits and reloads.
func WithLogger[T Item](logger *slog.Logger) Option[T] {
	return func(c *Controller[T]) {
		c.logger = logger
	}
}

// WithItems seeds the collection without fetching.
func WithItems[T Item](items []T) Option[T] {
	return func(c *Controller[T]) {
		c.items = slices.Clone(items)
	}
}

// NewController creates a controller backed by source.
func NewController[T Item](source Source[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Items returns a snapshot of the visible order.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Pending returns the outstanding move, or nil.
func (c *Controller[T]) Pending() *PendingMove[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Load replaces the collection with a fresh read from the source.
// A newer move or load issued while the fetch is in flight wins; the stale
// result is dropped and Load still returns nil.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	return c.reload(ctx, seq)
}

func (c *Controller[T]) reload(ctx context.Context, seq uint64) error {
	items, err := c.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch collection: %w", err)
	}
	if err := checkUnique(items); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("dropping stale reload", "seq", seq, "latest", c.seq)
		return nil
	}
	c.items = slices.Clone(items)
	// Whatever was pending is superseded by authoritative state.
	c.pending = nil
	return nil
}

// RequestMove applies the move locally and returns the new order with a
// PendingMove to commit. from == to is a no-op returning a nil move.
// Out-of-range indices return a PreconditionError and change nothing.
//
// The returned move must be passed to CommitMove or Discard. Until then
// every further RequestMove returns ErrMoveInProgress.
func (c *Controller[T]) RequestMove(from, to int) ([]T, *PendingMove[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return slices.Clone(c.items), nil, ErrMoveInProgress
	}

	moved, err := Move(c.items, from, to)
	if err != nil {
		return nil, nil, err
	}
	if from == to {
		return slices.Clone(c.items), nil, nil
	}

	c.seq++
	pm := &PendingMove[T]{
		Item:   c.items[from],
		Target: c.items[to],
		From:   from,
		To:     to,
		Seq:    c.seq,
		owner:  c,
		state:  StateApplied,
	}
	c.items = moved
	c.pending = pm

	return slices.Clone(c.items), pm, nil
}

// CommitMove persists a move returned by RequestMove.
//
// On success the optimistic order stands. On failure the failure is logged,
// the collection is reloaded from the source and a *errors.PersistError is
// returned. Committing an already-committed move does nothing: the backend
// is not contacted again and the collection is not touched.
func (c *Controller[T]) CommitMove(ctx context.Context, pm *PendingMove[T]) error {
	if pm == nil {
		return nil
	}
	if pm.owner != c {
		return ErrForeignMove
	}

	c.mu.Lock()
	if pm.state.Terminal() {
		state := pm.state
		c.mu.Unlock()
		if state == StateCommitted {
			return nil
		}
		return ErrMoveResolved
	}
	if pm.inFlight {
		c.mu.Unlock()
		return ErrMoveInProgress
	}
	pm.inFlight = true
	move := *pm
	c.mu.Unlock()

	commitErr := c.source.Commit(ctx, move)

	c.mu.Lock()
	pm.inFlight = false
	latest := pm.Seq == c.seq
	if c.pending == pm {
		c.pending = nil
	}

	if commitErr == nil {
		pm.state = StateCommitted
		c.mu.Unlock()
		c.logger.Debug("move committed", "item", pm.ItemID(), "from", pm.From, "to", pm.To, "seq", pm.Seq)
		return nil
	}

	pm.state = StateRolledBack
	if latest {
		// Take a fresh sequence number for the reload so a commit or load
		// racing with it is measured against the reload, not the move.
		c.seq++
	}
	reloadSeq := c.seq
	c.mu.Unlock()

	c.logger.Error("move rejected, reloading",
		"item", pm.ItemID(), "from", pm.From, "to", pm.To, "seq", pm.Seq, "error", commitErr)

	perr := &tferr.PersistError{ItemID: pm.ItemID(), Err: commitErr}
	if !latest {
		// Something newer already replaced the optimistic state.
		return perr
	}
	reloadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	if err := c.reload(reloadCtx, reloadSeq); err != nil {
		c.logger.Error("reload after rejected move failed", "item", pm.ItemID(), "error", err)
		perr.ReloadErr = err
	}
	return perr
}

// Discard abandons a move that was requested but will not be committed and
// restores the order from before it. The backend is not contacted. Discarding
// a move that is in flight, already resolved or superseded returns an error
// and changes nothing.
func (c *Controller[T]) Discard(pm *PendingMove[T]) error {
	if pm == nil {
		return nil
	}
	if pm.owner != c {
		return ErrForeignMove
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pm.state.Terminal() {
		return ErrMoveResolved
	}
	if pm.inFlight {
		return ErrMoveInProgress
	}
	if c.pending != pm || pm.Seq != c.seq {
		return ErrMoveResolved
	}

	restored, err := Move(c.items, pm.To, pm.From)
	if err != nil {
		return err
	}
	c.seq++
	c.items = restored
	c.pending = nil
	pm.state = StateRolledBack
	c.logger.Debug("move discarded", "item", pm.ItemID(), "from", pm.From, "to", pm.To, "seq", pm.Seq)
	return nil
}

// Move requests and commits a move in one call.
func (c *Controller[T]) Move(ctx context.Context, from, to int) ([]T, error) {
	_, pm, err := c.RequestMove(from, to)
	if err != nil {
		return nil, err
	}
	if err := c.CommitMove(ctx, pm); err != nil {
		return c.Items(), err
	}
	return c.Items(), nil
}

// IndexOf returns the position of the item with the given id, or -1.
func (c *Controller[T]) IndexOf(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.IndexFunc(c.items, func(item T) bool { return item.ItemID() == id })
}

func checkUnique[T Item](items []T) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := item.ItemID()
		if seen[id] {
			return tferr.InvalidField("collection", fmt.Sprintf("duplicate id %q", id))
		}
		seen[id] = true
	}
	return nil
}
