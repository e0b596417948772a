package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SaulT-G/skateshop/internal/client"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/ui"
)

var ErrProductNotFound = errors.New("product not found")

// Admin drives the product management screen: the create/edit form
// state, numeric bounds validation, and the mutations that invalidate
// the catalog snapshot.
type Admin struct {
	api       Gateway
	catalog   *Catalog
	notifier  Notifier
	confirmer Confirmer

	mu        sync.RWMutex
	editingID int64 // 0 means the form creates a new product
}

func NewAdmin(api Gateway, catalog *Catalog, notifier Notifier, confirmer Confirmer) *Admin {
	return &Admin{
		api:       api,
		catalog:   catalog,
		notifier:  notifier,
		confirmer: confirmer,
	}
}

// LoadProducts fetches the admin product list. It deliberately skips the
// catalog cache: the admin view must see mutations immediately.
func (a *Admin) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := a.api.Products(ctx, "")
	if err != nil {
		a.notifier.Notify("Error al cargar productos", ui.SeverityError)
		return nil, err
	}
	return products, nil
}

// BeginCreate resets the form to create mode.
func (a *Admin) BeginCreate() {
	a.mu.Lock()
	a.editingID = 0
	a.mu.Unlock()
}

// BeginEdit loads the product into the form and switches to edit mode.
func (a *Admin) BeginEdit(ctx context.Context, productID int64) (*domain.Product, error) {
	products, err := a.api.Products(ctx, "")
	if err != nil {
		a.notifier.Notify("Error al cargar producto", ui.SeverityError)
		return nil, err
	}
	for _, p := range products {
		if p.ID == productID {
			a.mu.Lock()
			a.editingID = productID
			a.mu.Unlock()
			// Stored values beyond the input ceilings render clamped.
			p.Stock = min(p.Stock, domain.MaxStock)
			p.Price = min(p.Price, domain.MaxPrice)
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// EditingID reports which product the form edits; 0 means create.
func (a *Admin) EditingID() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.editingID
}

func validateProductForm(form client.ProductForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return validationErr("El título es obligatorio")
	}
	if form.Stock < 0 || form.Stock > domain.MaxStock {
		return validationErr(fmt.Sprintf("Cantidad inválida. Debe estar entre 0 y %d", domain.MaxStock))
	}
	if form.Price < 0 || form.Price > domain.MaxPrice {
		return validationErr(fmt.Sprintf("Precio inválido. Debe estar entre 0 y %.2f", domain.MaxPrice))
	}
	return nil
}

// Save creates or updates depending on the form mode. Bounds are checked
// locally first; a rejection costs no network call. Success invalidates
// the catalog snapshot and resets the form to create mode.
func (a *Admin) Save(ctx context.Context, form client.ProductForm) error {
	if err := validateProductForm(form); err != nil {
		a.notifier.Notify(err.Error(), ui.SeverityError)
		return err
	}

	editingID := a.EditingID()
	var err error
	if editingID != 0 {
		_, err = a.api.UpdateProduct(ctx, editingID, form)
	} else {
		_, err = a.api.CreateProduct(ctx, form)
	}
	if err != nil {
		a.notifyFailure(err, "Error al guardar producto")
		return err
	}

	a.catalog.Invalidate()
	a.BeginCreate()
	if editingID != 0 {
		a.notifier.Notify("Producto actualizado exitosamente", ui.SeveritySuccess)
	} else {
		a.notifier.Notify("Producto creado exitosamente", ui.SeveritySuccess)
	}
	return nil
}

// Delete removes a product after explicit confirmation and invalidates
// the catalog snapshot.
func (a *Admin) Delete(ctx context.Context, productID int64) error {
	confirmed := a.confirmer.Confirm(ui.Options{
		Icon:        "🗑️",
		Title:       "Eliminar Producto",
		Message:     "¿Estás seguro de que deseas eliminar este producto? Esta acción no se puede deshacer.",
		ConfirmText: "Sí, eliminar",
		CancelText:  "Cancelar",
	})
	if !confirmed {
		return nil
	}

	if err := a.api.DeleteProduct(ctx, productID); err != nil {
		a.notifyFailure(err, "Error al eliminar producto")
		return err
	}

	a.catalog.Invalidate()
	a.notifier.Notify("Producto eliminado correctamente", ui.SeveritySuccess)
	return nil
}

func (a *Admin) notifyFailure(err error, fallback string) {
	var collabErr *client.CollaboratorError
	switch {
	case errors.As(err, &collabErr):
		msg := collabErr.Message
		if msg == "" {
			msg = fallback
		}
		a.notifier.Notify(msg, ui.SeverityError)
	case errors.Is(err, client.ErrNetwork):
		a.notifier.Notify("Error de conexión", ui.SeverityError)
	default:
		a.notifier.Notify(fallback, ui.SeverityError)
	}
}
