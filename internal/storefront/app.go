package storefront

import (
	"context"
	"time"

	"github.com/SaulT-G/skateshop/internal/cache"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/obs"
)

// App is the explicit application context: it owns the components, wires
// the view descriptors, and is the only place that coordinates
// cross-component effects (logout cleanup, post-login navigation).
type App struct {
	Views   *Views
	Session *Session
	Cart    *Cart
	Catalog *Catalog
	Admin   *Admin

	presenter Presenter
	notifier  Notifier
	search    *Debouncer
}

// Deps are the injected collaborators of the core.
type Deps struct {
	API       Gateway
	SDK       PlatformSession
	Store     SnapshotStore
	Presenter Presenter
	Notifier  Notifier
	Confirmer Confirmer
	// Cache backs the catalog snapshot; nil gets an in-process cache.
	Cache cache.Cache
	// SearchDebounce is the quiet period for search input; zero gets
	// the default 300ms.
	SearchDebounce time.Duration
}

func NewApp(deps Deps) *App {
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory(0)
	}
	if deps.SearchDebounce == 0 {
		deps.SearchDebounce = 300 * time.Millisecond
	}

	app := &App{
		presenter: deps.Presenter,
		notifier:  deps.Notifier,
		search:    NewDebouncer(deps.SearchDebounce),
	}
	app.Session = NewSession(deps.API, deps.SDK, deps.Store, deps.Notifier, deps.Confirmer)
	app.Catalog = NewCatalog(deps.API, deps.Cache)
	app.Cart = NewCart(deps.API, app.Session, app.Catalog, deps.Notifier, deps.Confirmer)
	app.Admin = NewAdmin(deps.API, app.Catalog, deps.Notifier, deps.Confirmer)
	app.Views = NewViews(deps.Presenter, app.Session.Identity)
	app.registerViews()
	return app
}

func anyRole(*domain.Identity) bool { return true }

func buyerOnly(identity *domain.Identity) bool { return identity.IsBuyer() }

func adminOnly(identity *domain.Identity) bool { return identity.IsAdmin() }

func (a *App) registerViews() {
	a.Views.Register(Descriptor{View: domain.ViewLogin, Allowed: anyRole})
	a.Views.Register(Descriptor{View: domain.ViewRegister, Allowed: anyRole})
	a.Views.Register(Descriptor{
		View:    domain.ViewProducts,
		Allowed: anyRole,
		OnEnter: func(ctx context.Context) {
			products, err := a.Catalog.Load(ctx)
			if err != nil {
				obs.Logger.Warn("catalog load failed", "err", err)
				return
			}
			a.presenter.RenderProducts(products, a.Catalog.NoResults())
		},
	})
	a.Views.Register(Descriptor{
		View:    domain.ViewCart,
		Allowed: buyerOnly,
		OnEnter: func(ctx context.Context) {
			if err := a.Cart.Load(ctx); err != nil {
				return
			}
			a.presenter.RenderCart(a.Cart.Lines(), a.Cart.Badge())
		},
	})
	a.Views.Register(Descriptor{View: domain.ViewAdminDashboard, Allowed: adminOnly})
	a.Views.Register(Descriptor{
		View:    domain.ViewAdmin,
		Allowed: adminOnly,
		OnEnter: func(ctx context.Context) {
			products, err := a.Admin.LoadProducts(ctx)
			if err != nil {
				return
			}
			a.presenter.RenderAdminProducts(products)
		},
	})
}

// Start restores the session once and lands on the role's home view.
func (a *App) Start(ctx context.Context) {
	identity := a.Session.Restore(ctx)
	if identity.IsBuyer() {
		a.Cart.RefreshBadge(ctx)
	}
	a.presenter.RenderNavbar(identity, a.Cart.Badge())
	a.Views.Activate(ctx, domain.HomeView(identity))
}

// Login authenticates and, on success, navigates to the role's home.
func (a *App) Login(ctx context.Context, credential, password string) error {
	if err := a.Session.Login(ctx, credential, password); err != nil {
		return err
	}
	identity := a.Session.Identity()
	if identity.IsBuyer() {
		a.Cart.RefreshBadge(ctx)
	}
	a.presenter.RenderNavbar(identity, a.Cart.Badge())
	a.Views.Activate(ctx, domain.HomeView(identity))
	return nil
}

// Register signs up and, on success, routes to the login view.
// Registration never auto-authenticates.
func (a *App) Register(ctx context.Context, form RegisterForm) error {
	if err := a.Session.Register(ctx, form); err != nil {
		return err
	}
	a.Views.Activate(ctx, domain.ViewLogin)
	return nil
}

// Logout clears every piece of client-held state once confirmed. The
// cleanup runs unconditionally even when the platform sign-out failed.
func (a *App) Logout(ctx context.Context) {
	if !a.Session.Logout(ctx) {
		return
	}
	a.Cart.Reset()
	a.Catalog.Invalidate()
	a.presenter.RenderNavbar(nil, 0)
	a.Views.Activate(ctx, domain.ViewLogin)
}

// SearchInput feeds one keystroke's worth of search text through the
// debouncer; only the last value of a burst reaches the server.
func (a *App) SearchInput(ctx context.Context, term string) {
	a.search.Do(func() {
		products, err := a.Catalog.Search(ctx, term)
		if err != nil {
			obs.Logger.Warn("product search failed", "err", err, "term", term)
			return
		}
		a.presenter.RenderProducts(products, a.Catalog.NoResults())
	})
}
