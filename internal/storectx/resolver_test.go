package storectx

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeRoleSource struct {
	admin bool
	err   error
}

func (f *fakeRoleSource) IsAdmin(context.Context, int64) (bool, error) {
	return f.admin, f.err
}

type fakeStoreSource struct {
	owned []Store
	all   []Store
	err   error
}

func (f *fakeStoreSource) ListOwned(context.Context, int64) ([]Store, error) {
	return f.owned, f.err
}

func (f *fakeStoreSource) ListAll(context.Context) ([]Store, error) {
	return f.all, f.err
}

type recordingSink struct {
	mu      sync.Mutex
	applied map[string]string
	resets  int
}

func (s *recordingSink) Apply(vars map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = vars
}

func (s *recordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
	s.resets++
}

func (s *recordingSink) current() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

func strPtr(s string) *string { return &s }

func testStores(ids ...string) []Store {
	out := make([]Store, len(ids))
	for i, id := range ids {
		out[i] = Store{ID: id, Slug: id, Name: "Store " + id, PrimaryColor: strPtr("#FF0000")}
	}
	return out
}

func TestResolveRestoresPersistedSelection(t *testing.T) {
	ctx := context.Background()
	selections := NewMemorySelectionStore()
	if err := selections.Set(ctx, 1, "Y"); err != nil {
		t.Fatalf("seed selection: %v", err)
	}

	r := NewResolver(1,
		&fakeRoleSource{admin: true},
		&fakeStoreSource{all: testStores("X", "Y", "Z")},
		selections, nil)

	if err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if r.State() != StateReady {
		t.Fatalf("state = %d, want ready", r.State())
	}
	if !r.IsAdmin() {
		t.Fatal("expected admin viewer")
	}
	if sel := r.Selected(); sel == nil || sel.ID != "Y" {
		t.Fatalf("selected = %+v, want Y", sel)
	}
}

func TestResolveFallsBackToFirstVisible(t *testing.T) {
	ctx := context.Background()
	selections := NewMemorySelectionStore()
	// persisted selection points at a store no longer visible
	if err := selections.Set(ctx, 1, "W"); err != nil {
		t.Fatalf("seed selection: %v", err)
	}

	r := NewResolver(1,
		&fakeRoleSource{admin: true},
		&fakeStoreSource{all: testStores("X", "Y", "Z")},
		selections, nil)

	if err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if sel := r.Selected(); sel == nil || sel.ID != "X" {
		t.Fatalf("selected = %+v, want first visible X", sel)
	}
}

func TestResolveEmptyVisibleSet(t *testing.T) {
	sink := &recordingSink{}
	r := NewResolver(1,
		&fakeRoleSource{admin: false},
		&fakeStoreSource{},
		NewMemorySelectionStore(), sink)

	if err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if r.State() != StateReady {
		t.Fatalf("state = %d, want ready", r.State())
	}
	if r.Selected() != nil {
		t.Fatal("expected empty selection")
	}
	if sink.current() != nil {
		t.Fatal("no branding variables should be applied")
	}
}

func TestOwnerSeesOnlyOwnedStores(t *testing.T) {
	r := NewResolver(1,
		&fakeRoleSource{admin: false},
		&fakeStoreSource{owned: testStores("mine"), all: testStores("A", "B", "mine")},
		NewMemorySelectionStore(), nil)

	if err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	visible := r.VisibleStores()
	if len(visible) != 1 || visible[0].ID != "mine" {
		t.Fatalf("visible = %+v, want only owned store", visible)
	}
}

func TestResolveFailsClosed(t *testing.T) {
	r := NewResolver(1,
		&fakeRoleSource{err: errors.New("roles table unavailable")},
		&fakeStoreSource{err: errors.New("stores unavailable")},
		NewMemorySelectionStore(), nil)

	if err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve must not surface dependency errors, got: %v", err)
	}
	if r.IsAdmin() {
		t.Fatal("role failure must resolve as non-admin")
	}
	if len(r.VisibleStores()) != 0 {
		t.Fatal("store failure must resolve as empty visible set")
	}
	if r.State() != StateReady {
		t.Fatalf("state = %d, want ready", r.State())
	}
}

func TestSelectPersistsSynchronously(t *testing.T) {
	ctx := context.Background()
	selections := NewMemorySelectionStore()
	stores := &fakeStoreSource{all: testStores("X", "Y", "Z")}

	r := NewResolver(1, &fakeRoleSource{admin: true}, stores, selections, nil)
	if err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := r.Select(ctx, "Y"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	persisted, err := selections.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if persisted != "Y" {
		t.Fatalf("persisted = %q, want Y", persisted)
	}

	// a fresh resolver over the same storage restores the selection
	fresh := NewResolver(1, &fakeRoleSource{admin: true}, stores, selections, nil)
	if err := fresh.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if sel := fresh.Selected(); sel == nil || sel.ID != "Y" {
		t.Fatalf("fresh selected = %+v, want Y", sel)
	}
}

func TestSelectRejectsInvisibleStore(t *testing.T) {
	r := NewResolver(1,
		&fakeRoleSource{admin: false},
		&fakeStoreSource{owned: testStores("X")},
		NewMemorySelectionStore(), nil)
	if err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := r.Select(context.Background(), "Z"); !errors.Is(err, ErrNotVisible) {
		t.Fatalf("Select = %v, want ErrNotVisible", err)
	}
}

func TestReResolveReappliesFallback(t *testing.T) {
	ctx := context.Background()
	stores := &fakeStoreSource{all: testStores("X", "Y")}
	r := NewResolver(1, &fakeRoleSource{admin: true}, stores, NewMemorySelectionStore(), nil)

	if err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := r.Select(ctx, "Y"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	// the visible set changes and Y disappears; re-resolving must fall back
	stores.all = testStores("X")
	if err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if sel := r.Selected(); sel == nil || sel.ID != "X" {
		t.Fatalf("selected = %+v, want fallback X", sel)
	}
}

func TestCloseDiscardsInFlightResults(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	sink := &recordingSink{}

	r := NewResolver(1,
		&blockingRoleSource{release: release, entered: entered},
		&fakeStoreSource{all: testStores("X")},
		NewMemorySelectionStore(), sink)

	done := make(chan error, 1)
	go func() { done <- r.Resolve(context.Background()) }()

	<-entered
	r.Close()
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if r.Selected() != nil {
		t.Fatal("closed resolver must not hold a selection")
	}
	if sink.current() != nil {
		t.Fatal("closed resolver must not apply branding variables")
	}
	if err := r.Resolve(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Resolve after Close = %v, want ErrClosed", err)
	}
}

type blockingRoleSource struct {
	release chan struct{}
	entered chan struct{}
}

func (b *blockingRoleSource) IsAdmin(context.Context, int64) (bool, error) {
	if b.entered != nil {
		close(b.entered)
	}
	<-b.release
	return true, nil
}

func TestThemeVarsAppliedAndReleased(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	r := NewResolver(1,
		&fakeRoleSource{admin: true},
		&fakeStoreSource{all: testStores("X")},
		NewMemorySelectionStore(), sink)

	if err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	vars := sink.current()
	if vars == nil {
		t.Fatal("expected branding variables after selection")
	}
	if vars[VarPrimary] != "0 100% 50%" {
		t.Fatalf("%s = %q, want 0 100%% 50%%", VarPrimary, vars[VarPrimary])
	}
	if vars[VarPrimaryForeground] != "white" {
		t.Fatalf("%s = %q, want white", VarPrimaryForeground, vars[VarPrimaryForeground])
	}
	// no secondary color set: neutral default
	if vars[VarSecondary] != "210 40% 96%" {
		t.Fatalf("%s = %q, want neutral default", VarSecondary, vars[VarSecondary])
	}

	r.Close()
	if sink.current() != nil {
		t.Fatal("Close must release branding variables")
	}
}

func TestThemeVarsMalformedColorFallsBack(t *testing.T) {
	vars := ThemeVars(Store{ID: "X", PrimaryColor: strPtr("zzz")})
	if vars[VarPrimary] != "222 47% 11%" {
		t.Fatalf("%s = %q, want neutral default", VarPrimary, vars[VarPrimary])
	}
}
