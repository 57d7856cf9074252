package reorder

import (
	"context"
	"errors"
	"slices"
	"testing"

	tferr "github.com/talentflow/talentflow/internal/errors"
)

type testItem struct {
	id    string
	title string
}

func (i testItem) ItemID() string { return i.id }

func items(ids ...string) []testItem {
	out := make([]testItem, len(ids))
	for i, id := range ids {
		out[i] = testItem{id: id, title: "Job " + id}
	}
	return out
}

func ids(items []testItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.id
	}
	return out
}

// testSource is an in-memory Source whose behavior tests can script.
type testSource struct {
	order     []testItem
	commitErr error
	fetchErr  error
	// honorCtx makes Fetch and Commit fail on a done context, like a
	// network call would.
	honorCtx bool

	fetches int
	commits []PendingMove[testItem]

	// Hooks run inside Fetch/Commit, before they return.
	onFetch  func()
	onCommit func()
}

func (s *testSource) Fetch(ctx context.Context) ([]testItem, error) {
	s.fetches++
	if s.honorCtx {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if s.onFetch != nil {
		s.onFetch()
	}
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return slices.Clone(s.order), nil
}

func (s *testSource) Commit(ctx context.Context, move PendingMove[testItem]) error {
	s.commits = append(s.commits, move)
	if s.honorCtx {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if s.onCommit != nil {
		s.onCommit()
	}
	if s.commitErr != nil {
		return s.commitErr
	}
	moved, err := Move(s.order, move.From, move.To)
	if err != nil {
		return err
	}
	s.order = moved
	return nil
}

func setupController(t *testing.T, order ...string) (*Controller[testItem], *testSource) {
	t.Helper()
	source := &testSource{order: items(order...)}
	c := NewController[testItem](source)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c, source
}

func assertOrder(t *testing.T, got []testItem, want ...string) {
	t.Helper()
	if !slices.Equal(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

// ============================================================================
// RequestMove
// ============================================================================

func TestController_RequestMove_AppliesOptimistically(t *testing.T) {
	c, source := setupController(t, "A", "B", "C", "D")

	got, pm, err := c.RequestMove(0, 2)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}

	assertOrder(t, got, "B", "C", "A", "D")
	assertOrder(t, c.Items(), "B", "C", "A", "D")

	if pm == nil {
		t.Fatal("expected a pending move")
	}
	if pm.ItemID() != "A" || pm.From != 0 || pm.To != 2 {
		t.Errorf("unexpected pending move: item=%s from=%d to=%d", pm.ItemID(), pm.From, pm.To)
	}
	if pm.Target.id != "C" {
		t.Errorf("Target = %s, want C", pm.Target.id)
	}
	if pm.State() != StateApplied {
		t.Errorf("State = %v, want applied", pm.State())
	}
	if len(source.commits) != 0 {
		t.Error("RequestMove must not contact the backend")
	}
}

func TestController_RequestMove_LastToFirst(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C", "D")

	got, _, err := c.RequestMove(3, 0)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	assertOrder(t, got, "D", "A", "B", "C")
}

func TestController_RequestMove_SameIndexIsNoop(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C")

	got, pm, err := c.RequestMove(1, 1)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	if pm != nil {
		t.Error("expected no pending move for a no-op")
	}
	assertOrder(t, got, "A", "B", "C")
	if c.Pending() != nil {
		t.Error("no-op must not occupy the pending slot")
	}
}

func TestController_RequestMove_PreservesItems(t *testing.T) {
	order := []string{"A", "B", "C", "D", "E"}
	for from := range order {
		for to := range order {
			if from == to {
				continue
			}
			c, _ := setupController(t, order...)
			got, _, err := c.RequestMove(from, to)
			if err != nil {
				t.Fatalf("RequestMove(%d, %d) failed: %v", from, to, err)
			}
			if len(got) != len(order) {
				t.Fatalf("length changed: %d", len(got))
			}
			sorted := ids(got)
			slices.Sort(sorted)
			if !slices.Equal(sorted, order) {
				t.Errorf("RequestMove(%d, %d) changed ids: %v", from, to, ids(got))
			}
		}
	}
}

func TestController_RequestMove_OutOfRange(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C")

	_, pm, err := c.RequestMove(0, 5)
	if !tferr.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if pm != nil {
		t.Error("expected no pending move")
	}
	assertOrder(t, c.Items(), "A", "B", "C")
}

func TestController_RequestMove_RejectedWhilePending(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C")

	if _, _, err := c.RequestMove(0, 1); err != nil {
		t.Fatalf("first RequestMove failed: %v", err)
	}

	got, pm, err := c.RequestMove(2, 0)
	if !errors.Is(err, ErrMoveInProgress) {
		t.Fatalf("expected ErrMoveInProgress, got %v", err)
	}
	if pm != nil {
		t.Error("expected no pending move")
	}
	assertOrder(t, got, "B", "A", "C")
}

// ============================================================================
// CommitMove
// ============================================================================

func TestController_CommitMove_Success(t *testing.T) {
	c, source := setupController(t, "A", "B", "C", "D")

	_, pm, _ := c.RequestMove(0, 2)
	if err := c.CommitMove(context.Background(), pm); err != nil {
		t.Fatalf("CommitMove failed: %v", err)
	}

	assertOrder(t, c.Items(), "B", "C", "A", "D")
	if pm.State() != StateCommitted {
		t.Errorf("State = %v, want committed", pm.State())
	}
	if c.Pending() != nil {
		t.Error("pending slot should be free after commit")
	}
	if source.fetches != 1 {
		t.Errorf("success must not refetch, fetches = %d", source.fetches)
	}
	assertOrder(t, source.order, "B", "C", "A", "D")
}

func TestController_CommitMove_DuplicateAckIsIdempotent(t *testing.T) {
	c, source := setupController(t, "A", "B", "C")

	_, pm, _ := c.RequestMove(2, 0)
	if err := c.CommitMove(context.Background(), pm); err != nil {
		t.Fatalf("CommitMove failed: %v", err)
	}
	if err := c.CommitMove(context.Background(), pm); err != nil {
		t.Fatalf("second CommitMove failed: %v", err)
	}

	if len(source.commits) != 1 {
		t.Errorf("backend contacted %d times, want 1", len(source.commits))
	}
	assertOrder(t, c.Items(), "C", "A", "B")
	assertOrder(t, source.order, "C", "A", "B")
}

func TestController_CommitMove_FailureReloads(t *testing.T) {
	c, source := setupController(t, "J1", "J2", "J3")
	source.commitErr = errors.New("503 service unavailable")

	got, pm, _ := c.RequestMove(2, 0)
	assertOrder(t, got, "J3", "J1", "J2")

	err := c.CommitMove(context.Background(), pm)
	if !tferr.IsPersist(err) {
		t.Fatalf("expected persist error, got %v", err)
	}
	var perr *tferr.PersistError
	if !errors.As(err, &perr) || perr.ItemID != "J3" {
		t.Errorf("unexpected persist error: %#v", err)
	}

	assertOrder(t, c.Items(), "J1", "J2", "J3")
	if pm.State() != StateRolledBack {
		t.Errorf("State = %v, want rolled_back", pm.State())
	}
	if source.fetches != 2 {
		t.Errorf("expected exactly one reload, fetches = %d", source.fetches)
	}
}

func TestController_CommitMove_CancelledContextStillReloads(t *testing.T) {
	c, source := setupController(t, "J1", "J2", "J3")
	source.honorCtx = true

	got, pm, _ := c.RequestMove(2, 0)
	assertOrder(t, got, "J3", "J1", "J2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.CommitMove(ctx, pm)
	if !tferr.IsPersist(err) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected persist error wrapping context.Canceled, got %v", err)
	}
	var perr *tferr.PersistError
	if errors.As(err, &perr) && perr.ReloadErr != nil {
		t.Errorf("reload should not inherit the cancellation: %v", perr.ReloadErr)
	}

	assertOrder(t, c.Items(), "J1", "J2", "J3")
	if pm.State() != StateRolledBack {
		t.Errorf("State = %v, want rolled_back", pm.State())
	}

	// The next move starts from the authoritative order.
	got, _, err = c.RequestMove(0, 1)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	assertOrder(t, got, "J2", "J1", "J3")
}

func TestController_CommitMove_FailureAdoptsServerOrder(t *testing.T) {
	c, source := setupController(t, "A", "B", "C")
	source.commitErr = tferr.OrderConflict("A", 0)
	source.onCommit = func() {
		// Another client reordered in the meantime.
		source.order = items("C", "B", "A")
	}

	_, pm, _ := c.RequestMove(0, 1)
	err := c.CommitMove(context.Background(), pm)
	if !tferr.IsConflict(err) {
		t.Errorf("persist error should expose the conflict cause, got %v", err)
	}

	assertOrder(t, c.Items(), "C", "B", "A")
}

func TestController_CommitMove_AfterRollback(t *testing.T) {
	c, source := setupController(t, "A", "B")
	source.commitErr = errors.New("boom")

	_, pm, _ := c.RequestMove(0, 1)
	_ = c.CommitMove(context.Background(), pm)

	err := c.CommitMove(context.Background(), pm)
	if !errors.Is(err, ErrMoveResolved) {
		t.Errorf("expected ErrMoveResolved, got %v", err)
	}
	if len(source.commits) != 1 {
		t.Errorf("backend contacted %d times, want 1", len(source.commits))
	}
}

func TestController_CommitMove_ReloadFails(t *testing.T) {
	c, source := setupController(t, "A", "B")
	source.commitErr = errors.New("boom")

	_, pm, _ := c.RequestMove(0, 1)
	source.fetchErr = errors.New("offline")

	err := c.CommitMove(context.Background(), pm)
	var perr *tferr.PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistError, got %v", err)
	}
	if perr.ReloadErr == nil {
		t.Error("expected ReloadErr to be set")
	}
}

func TestController_CommitMove_Nil(t *testing.T) {
	c, source := setupController(t, "A")
	if err := c.CommitMove(context.Background(), nil); err != nil {
		t.Errorf("CommitMove(nil) = %v, want nil", err)
	}
	if len(source.commits) != 0 {
		t.Error("nil move must not reach the backend")
	}
}

func TestController_CommitMove_ForeignMove(t *testing.T) {
	c1, _ := setupController(t, "A", "B")
	c2, _ := setupController(t, "A", "B")

	_, pm, _ := c1.RequestMove(0, 1)
	if err := c2.CommitMove(context.Background(), pm); !errors.Is(err, ErrForeignMove) {
		t.Errorf("expected ErrForeignMove, got %v", err)
	}
}

// ============================================================================
// Sequence guard
// ============================================================================

func TestController_LateSuccessDoesNotResurrectStaleOrder(t *testing.T) {
	c, source := setupController(t, "A", "B", "C")

	_, pm, _ := c.RequestMove(0, 2)

	// A filter change refetches while the commit is in flight; the backend
	// has not applied the move yet.
	source.onCommit = func() {
		if err := c.Load(context.Background()); err != nil {
			t.Errorf("Load failed: %v", err)
		}
	}

	if err := c.CommitMove(context.Background(), pm); err != nil {
		t.Fatalf("CommitMove failed: %v", err)
	}

	// The refetch reflected pre-move state and must stand.
	assertOrder(t, c.Items(), "A", "B", "C")
}

func TestController_LateFailureDoesNotReloadAgain(t *testing.T) {
	c, source := setupController(t, "A", "B", "C")
	source.commitErr = errors.New("boom")

	_, pm, _ := c.RequestMove(0, 2)
	source.onCommit = func() {
		_ = c.Load(context.Background())
	}

	err := c.CommitMove(context.Background(), pm)
	if !tferr.IsPersist(err) {
		t.Fatalf("expected persist error, got %v", err)
	}

	// setup load + the load inside the hook, nothing more.
	if source.fetches != 2 {
		t.Errorf("fetches = %d, want 2", source.fetches)
	}
	assertOrder(t, c.Items(), "A", "B", "C")
}

func TestController_StaleLoadDropped(t *testing.T) {
	c, source := setupController(t, "A", "B", "C")

	var moved []testItem
	source.onFetch = func() {
		source.onFetch = nil
		// The user drags while the refetch is in flight.
		moved, _, _ = c.RequestMove(2, 0)
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertOrder(t, moved, "C", "A", "B")
	assertOrder(t, c.Items(), "C", "A", "B")
	if c.Pending() == nil {
		t.Error("the newer move should still be pending")
	}
}

func TestController_LoadClearsPending(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C")

	_, _, _ = c.RequestMove(0, 1)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Pending() != nil {
		t.Error("Load should clear the pending slot")
	}
	if _, _, err := c.RequestMove(0, 1); err != nil {
		t.Errorf("RequestMove after Load failed: %v", err)
	}
}

// ============================================================================
// Load / Move
// ============================================================================

func TestController_Load_RejectsDuplicateIDs(t *testing.T) {
	source := &testSource{order: items("A", "B", "A")}
	c := NewController[testItem](source)

	err := c.Load(context.Background())
	if !tferr.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(c.Items()) != 0 {
		t.Error("collection should be untouched")
	}
}

func TestController_Load_FetchError(t *testing.T) {
	source := &testSource{fetchErr: errors.New("offline")}
	c := NewController[testItem](source, WithItems(items("X")))

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	assertOrder(t, c.Items(), "X")
}

func TestController_Move(t *testing.T) {
	c, source := setupController(t, "A", "B", "C", "D")

	got, err := c.Move(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	assertOrder(t, got, "D", "A", "B", "C")
	assertOrder(t, source.order, "D", "A", "B", "C")
}

func TestController_ItemsIsSnapshot(t *testing.T) {
	c, _ := setupController(t, "A", "B")

	snapshot := c.Items()
	snapshot[0] = testItem{id: "Z"}

	assertOrder(t, c.Items(), "A", "B")
}

func TestController_Discard(t *testing.T) {
	c, source := setupController(t, "A", "B", "C")

	_, pm, _ := c.RequestMove(0, 2)
	if err := c.Discard(pm); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}

	assertOrder(t, c.Items(), "A", "B", "C")
	if c.Pending() != nil {
		t.Error("Discard should clear the pending move")
	}
	if pm.State() != StateRolledBack {
		t.Errorf("State = %v, want rolled_back", pm.State())
	}
	if len(source.commits) != 0 || source.fetches != 1 {
		t.Errorf("Discard should not contact the source: commits=%d fetches=%d", len(source.commits), source.fetches)
	}

	if _, _, err := c.RequestMove(1, 0); err != nil {
		t.Errorf("RequestMove after Discard failed: %v", err)
	}
	if err := c.CommitMove(context.Background(), pm); !errors.Is(err, ErrMoveResolved) {
		t.Errorf("committing a discarded move: got %v, want ErrMoveResolved", err)
	}
}

func TestController_Discard_AfterCommit(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C")

	_, pm, _ := c.RequestMove(0, 2)
	if err := c.CommitMove(context.Background(), pm); err != nil {
		t.Fatalf("CommitMove failed: %v", err)
	}
	if err := c.Discard(pm); !errors.Is(err, ErrMoveResolved) {
		t.Errorf("Discard after commit: got %v, want ErrMoveResolved", err)
	}
	assertOrder(t, c.Items(), "B", "C", "A")
}

func TestController_Discard_Foreign(t *testing.T) {
	c, _ := setupController(t, "A", "B")
	other, _ := setupController(t, "A", "B")

	_, pm, _ := other.RequestMove(0, 1)
	if err := c.Discard(pm); !errors.Is(err, ErrForeignMove) {
		t.Errorf("got %v, want ErrForeignMove", err)
	}
}

func TestController_IndexOf(t *testing.T) {
	c, _ := setupController(t, "A", "B", "C")

	if _, err := c.Move(context.Background(), 0, 2); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if idx := c.IndexOf("A"); idx != 2 {
		t.Errorf("IndexOf(A) = %d, want 2", idx)
	}
	if idx := c.IndexOf("Z"); idx != -1 {
		t.Errorf("IndexOf(Z) = %d, want -1", idx)
	}
}

func TestState_Terminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateApplied, false},
		{StateCommitted, true},
		{StateRolledBack, true},
	}
	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{
		StateIdle:       "idle",
		StateApplied:    "applied",
		StateCommitted:  "committed",
		StateRolledBack: "rolled_back",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(state), got, want)
		}
	}
}
