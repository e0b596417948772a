package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/obs"
)

var ErrViewNotFound = errors.New("view not found")

// Descriptor binds a view to its role guard and entry side effect. Views
// that carry no descriptor cannot be activated at all, so a new view
// cannot silently skip its guard.
type Descriptor struct {
	View    domain.View
	Allowed func(identity *domain.Identity) bool
	OnEnter func(ctx context.Context)
}

// Views enforces the one-visible-view invariant and runs the role-aware
// auto-action dispatch on every transition.
type Views struct {
	presenter   Presenter
	identity    func() *domain.Identity
	descriptors map[domain.View]Descriptor

	mu      sync.RWMutex
	current domain.View
}

func NewViews(presenter Presenter, identity func() *domain.Identity) *Views {
	return &Views{
		presenter:   presenter,
		identity:    identity,
		descriptors: make(map[domain.View]Descriptor),
	}
}

func (v *Views) Register(d Descriptor) {
	v.descriptors[d.View] = d
}

// Current reports the active view, or "" before the first activation.
func (v *Views) Current() domain.View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Activate swaps visibility first and dispatches side effects second, so
// the screen is consistent before any request fires. Unknown views are
// logged and leave the prior view active. Activating the current view
// again re-runs its auto-action; that repetition is deliberate.
func (v *Views) Activate(ctx context.Context, view domain.View) {
	d, ok := v.descriptors[view]
	if !ok {
		obs.Logger.Error("view not found", "view", string(view))
		return
	}

	v.presenter.ShowView(view)
	v.mu.Lock()
	v.current = view
	v.mu.Unlock()

	identity := v.identity()
	if d.Allowed != nil && !d.Allowed(identity) {
		home := domain.HomeView(identity)
		obs.Logger.Warn("view not permitted for role, redirecting",
			"view", string(view), "redirect", string(home))
		// Home views are always permitted for their role, so this
		// recursion terminates after one step.
		v.Activate(ctx, home)
		return
	}

	if d.OnEnter != nil {
		d.OnEnter(ctx)
	}
}
