// Package storefront is the client-side core: view transitions, the
// session lifecycle, the cart mirror and the catalog snapshot. All
// shared state lives in the App context and is mutated only by its
// owning component; rendering and prompting go through the interfaces
// below so the core stays headless.
package storefront

import (
	"context"
	"errors"

	"github.com/SaulT-G/skateshop/internal/client"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/platform"
	"github.com/SaulT-G/skateshop/internal/ui"
)

// Gateway is the slice of the REST client the core consumes.
type Gateway interface {
	Login(ctx context.Context, credential, password string) (*domain.Identity, *platform.Session, error)
	Register(ctx context.Context, form client.RegisterForm) error
	Products(ctx context.Context, search string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, form client.ProductForm) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, form client.ProductForm) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	Cart(ctx context.Context, userID string) ([]domain.CartLine, error)
	AddCartLine(ctx context.Context, userID string, productID int64, quantity int) error
	UpdateCartLine(ctx context.Context, lineID int64, quantity int) error
	RemoveCartLine(ctx context.Context, lineID int64) error
	ClearCart(ctx context.Context, userID string) error
}

// Notifier surfaces best-effort user feedback.
type Notifier interface {
	Notify(message string, severity ui.Severity)
}

// Confirmer gates destructive operations behind a yes/no dialog.
type Confirmer interface {
	Confirm(opts ui.Options) bool
}

// Presenter renders views and their content. ShowView must leave exactly
// one view visible.
type Presenter interface {
	ShowView(view domain.View)
	RenderProducts(products []domain.Product, noResults bool)
	RenderCart(lines []domain.CartLine, badge int)
	RenderAdminProducts(products []domain.Product)
	RenderNavbar(identity *domain.Identity, badge int)
}

// SnapshotStore persists the identity snapshot across restarts.
type SnapshotStore interface {
	Save(identity *domain.Identity) error
	Load() (*domain.Identity, error)
	Clear() error
}

// PlatformSession is the client-side platform SDK surface: token
// exchange, live-session profile reads and sign-out.
type PlatformSession interface {
	SetSession(s *platform.Session)
	SignOut(ctx context.Context) error
	// CurrentProfile resolves the live session to a profile-backed
	// identity, or ErrNoLiveSession when none exists.
	CurrentProfile(ctx context.Context) (*domain.Identity, error)
}

var ErrNoLiveSession = errors.New("no live platform session")

// ValidationError is a local rejection: zero network cost, surfaced
// immediately, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}
