package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/SaulT-G/skateshop/internal/client"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/ui"
)

var (
	ErrNotBuyer          = errors.New("only buyers have a cart")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Cart mirrors the server-held cart rows. Reconciliation strategy: after
// every successful mutation the full mirror is reloaded rather than
// patched locally, trading redundant reads for immunity to drift.
type Cart struct {
	api       Gateway
	session   *Session
	catalog   *Catalog
	notifier  Notifier
	confirmer Confirmer

	mu    sync.RWMutex
	lines []domain.CartLine
	badge int
}

func NewCart(api Gateway, session *Session, catalog *Catalog, notifier Notifier, confirmer Confirmer) *Cart {
	return &Cart{
		api:       api,
		session:   session,
		catalog:   catalog,
		notifier:  notifier,
		confirmer: confirmer,
	}
}

// Lines returns a copy of the mirror.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Badge is the sum of all line quantities, recomputed after every
// cart-mutating operation rather than maintained incrementally.
func (c *Cart) Badge() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.badge
}

// Load reloads the mirror and badge from the server.
func (c *Cart) Load(ctx context.Context) error {
	identity := c.session.Identity()
	if !identity.IsBuyer() {
		return ErrNotBuyer
	}

	lines, err := c.api.Cart(ctx, identity.ID)
	if err != nil {
		c.notifyFailure(err, "Error al cargar carrito")
		return err
	}

	c.mu.Lock()
	c.lines = lines
	c.badge = sumQuantities(lines)
	c.mu.Unlock()
	return nil
}

// RefreshBadge recomputes the badge from server truth without touching
// the rendered mirror.
func (c *Cart) RefreshBadge(ctx context.Context) {
	identity := c.session.Identity()
	if !identity.IsBuyer() {
		c.mu.Lock()
		c.badge = 0
		c.mu.Unlock()
		return
	}
	lines, err := c.api.Cart(ctx, identity.ID)
	if err != nil {
		return // badge refresh is best-effort
	}
	c.mu.Lock()
	c.badge = sumQuantities(lines)
	c.mu.Unlock()
}

// AddLine upserts one unit of the product. Only buyers may call it;
// everyone else gets a rejection notice and no request is issued. On
// success the catalog snapshot is invalidated even though this client's
// own stock view did not change: the conservative policy keeps an
// admin's concurrent edits from surviving in a stale snapshot.
func (c *Cart) AddLine(ctx context.Context, productID int64) error {
	identity := c.session.Identity()
	if !identity.IsBuyer() {
		c.notifier.Notify("Debes iniciar sesión como comprador", ui.SeverityError)
		return ErrNotBuyer
	}

	if err := c.api.AddCartLine(ctx, identity.ID, productID, 1); err != nil {
		c.notifyFailure(err, "Error al agregar al carrito")
		return err
	}

	c.catalog.Invalidate()
	c.RefreshBadge(ctx)
	c.notifier.Notify("Producto agregado al carrito", ui.SeveritySuccess)
	return nil
}

// SetLineQuantity validates against the cached stock ceiling before any
// request. A quantity below one delegates to RemoveLine. On success the
// whole mirror reloads.
func (c *Cart) SetLineQuantity(ctx context.Context, lineID int64, quantity int) error {
	if quantity < 1 {
		return c.RemoveLine(ctx, lineID)
	}

	line, ok := c.findLine(lineID)
	if ok && quantity > line.Stock {
		c.notifier.Notify("Stock insuficiente", ui.SeverityError)
		return ErrInsufficientStock
	}

	if err := c.api.UpdateCartLine(ctx, lineID, quantity); err != nil {
		c.notifyFailure(err, "Error al actualizar cantidad")
		return err
	}
	return c.Load(ctx)
}

// RemoveLine deletes one line after explicit confirmation.
func (c *Cart) RemoveLine(ctx context.Context, lineID int64) error {
	confirmed := c.confirmer.Confirm(ui.Options{
		Icon:        "🗑️",
		Title:       "Eliminar Producto",
		Message:     "¿Quitar este producto del carrito?",
		ConfirmText: "Sí, eliminar",
		CancelText:  "Cancelar",
	})
	if !confirmed {
		return nil
	}

	if err := c.api.RemoveCartLine(ctx, lineID); err != nil {
		c.notifyFailure(err, "Error al eliminar del carrito")
		return err
	}

	c.notifier.Notify("Producto eliminado del carrito", ui.SeveritySuccess)
	return c.Load(ctx)
}

// Clear empties the cart after explicit confirmation.
func (c *Cart) Clear(ctx context.Context) error {
	identity := c.session.Identity()
	if !identity.IsBuyer() {
		return ErrNotBuyer
	}

	confirmed := c.confirmer.Confirm(ui.Options{
		Icon:        "🛒",
		Title:       "Vaciar Carrito",
		Message:     "¿Estás seguro de que deseas vaciar todo el carrito?",
		ConfirmText: "Sí, vaciar",
		CancelText:  "Cancelar",
	})
	if !confirmed {
		return nil
	}

	if err := c.api.ClearCart(ctx, identity.ID); err != nil {
		c.notifyFailure(err, "Error al vaciar carrito")
		return err
	}

	c.notifier.Notify("Carrito vaciado exitosamente", ui.SeveritySuccess)
	return c.Load(ctx)
}

// Reset drops local cart state without any network call. Used on logout.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.badge = 0
	c.mu.Unlock()
}

func (c *Cart) findLine(lineID int64) (domain.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, line := range c.lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

func (c *Cart) notifyFailure(err error, fallback string) {
	var collabErr *client.CollaboratorError
	switch {
	case errors.As(err, &collabErr):
		msg := collabErr.Message
		if msg == "" {
			msg = fallback
		}
		c.notifier.Notify(msg, ui.SeverityError)
	case errors.Is(err, client.ErrNetwork):
		c.notifier.Notify("Error de conexión", ui.SeverityError)
	default:
		c.notifier.Notify(fallback, ui.SeverityError)
	}
}

func sumQuantities(lines []domain.CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
