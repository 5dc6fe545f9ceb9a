// Package storectx resolves which store the current viewer is operating on
// and keeps the tenant branding variables in sync with that selection.
package storectx

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	ErrClosed     = errors.New("storectx: resolver is closed")
	ErrNotVisible = errors.New("storectx: store is not visible to this viewer")
)

type State int32

const (
	StateUninitialized State = iota
	StateResolvingRole
	StateResolvingStores
	StateReady
)

// Store is the resolver's projection of a tenant. It is read from the
// external source and never written back.
type Store struct {
	ID             string
	Slug           string
	Name           string
	PrimaryColor   *string
	SecondaryColor *string
	LogoURL        *string
	IsFoodService  bool
}

// RoleSource answers whether the viewer is a platform admin.
type RoleSource interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// StoreSource lists the stores a viewer may operate on. Admins see all
// stores, owners only their own.
type StoreSource interface {
	ListOwned(ctx context.Context, userID int64) ([]Store, error)
	ListAll(ctx context.Context) ([]Store, error)
}

// SelectionStore persists the active store id across sessions.
type SelectionStore interface {
	Get(ctx context.Context, userID int64) (string, error)
	Set(ctx context.Context, userID int64, storeID string) error
}

// ThemeSink receives the branding variables for the selected store. Apply
// and Reset form a scoped pair: vars applied on selection are released on
// deselection or Close, so concurrent resolvers do not clobber each other.
type ThemeSink interface {
	Apply(vars map[string]string)
	Reset()
}

// NopThemeSink discards theme updates.
type NopThemeSink struct{}

func (NopThemeSink) Apply(map[string]string) {}
func (NopThemeSink) Reset()                  {}

// Resolver is the single writer of the active-store selection for one
// viewer. All reads and writes go through its mutex; a generation counter
// discards the result of any fetch that was superseded by a newer Resolve
// or by Close.
type Resolver struct {
	userID     int64
	roles      RoleSource
	stores     StoreSource
	selections SelectionStore
	theme      ThemeSink

	mu         sync.Mutex
	generation uint64
	closed     bool
	state      State
	isAdmin    bool
	visible    []Store
	selected   *Store
}

func NewResolver(userID int64, roles RoleSource, stores StoreSource, selections SelectionStore, theme ThemeSink) *Resolver {
	if theme == nil {
		theme = NopThemeSink{}
	}
	return &Resolver{
		userID:     userID,
		roles:      roles,
		stores:     stores,
		selections: selections,
		theme:      theme,
		state:      StateUninitialized,
	}
}

// Resolve runs the role check, the role-gated store listing and the
// selection rule. It is re-entrant: calling it again supersedes any
// in-flight resolution (last write wins). Dependency failures resolve the
// viewer as a non-admin with no visible stores rather than surfacing an
// error.
func (r *Resolver) Resolve(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.generation++
	gen := r.generation
	r.state = StateResolvingRole
	r.mu.Unlock()

	isAdmin, err := r.roles.IsAdmin(ctx, r.userID)
	if err != nil {
		log.Printf("storectx: role check failed for user %d, failing closed: %v", r.userID, err)
		isAdmin = false
	}

	if !r.advance(gen, StateResolvingStores) {
		return nil
	}

	var visible []Store
	if isAdmin {
		visible, err = r.stores.ListAll(ctx)
	} else {
		visible, err = r.stores.ListOwned(ctx, r.userID)
	}
	if err != nil {
		log.Printf("storectx: store listing failed for user %d, failing closed: %v", r.userID, err)
		visible = nil
	}

	persisted, err := r.selections.Get(ctx, r.userID)
	if err != nil {
		log.Printf("storectx: selection read failed for user %d: %v", r.userID, err)
		persisted = ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.generation {
		// superseded or torn down while fetching; discard
		return nil
	}
	r.isAdmin = isAdmin
	r.visible = visible
	r.state = StateReady
	r.applySelectionLocked(persisted)
	return nil
}

// advance moves to the next state if this resolution is still current.
func (r *Resolver) advance(gen uint64, next State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.generation {
		return false
	}
	r.state = next
	return true
}

// applySelectionLocked enforces the selection rule: the persisted id if it
// is still visible, otherwise the first visible store, otherwise empty.
func (r *Resolver) applySelectionLocked(preferred string) {
	var next *Store
	if preferred != "" {
		for i := range r.visible {
			if r.visible[i].ID == preferred {
				next = &r.visible[i]
				break
			}
		}
	}
	if next == nil && len(r.visible) > 0 {
		next = &r.visible[0]
	}
	r.setSelectedLocked(next)
}

func (r *Resolver) setSelectedLocked(next *Store) {
	r.selected = next
	if next == nil {
		r.theme.Reset()
		return
	}
	r.theme.Apply(ThemeVars(*next))
}

// Select makes an explicit selection. The id must be in the visible set;
// the choice is written to durable storage synchronously.
func (r *Resolver) Select(ctx context.Context, storeID string) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	var chosen *Store
	for i := range r.visible {
		if r.visible[i].ID == storeID {
			chosen = &r.visible[i]
			break
		}
	}
	if chosen == nil {
		r.mu.Unlock()
		return ErrNotVisible
	}
	r.setSelectedLocked(chosen)
	r.mu.Unlock()

	if err := r.selections.Set(ctx, r.userID, storeID); err != nil {
		return err
	}
	return nil
}

// Close tears the resolver down: pending fetch results are discarded and
// the branding variables are released.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.generation++
	r.selected = nil
	r.visible = nil
	r.theme.Reset()
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) IsAdmin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isAdmin
}

// Selected returns a copy of the active store, or nil when no store is
// selected.
func (r *Resolver) Selected() *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return nil
	}
	s := *r.selected
	return &s
}

// VisibleStores returns a copy of the viewer's visible store set.
func (r *Resolver) VisibleStores() []Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Store, len(r.visible))
	copy(out, r.visible)
	return out
}

// ThemeVariables returns the branding variables for the current selection,
// or nil when nothing is selected.
func (r *Resolver) ThemeVariables() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return nil
	}
	return ThemeVars(*r.selected)
}
