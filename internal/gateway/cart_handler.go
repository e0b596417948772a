package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SaulT-G/skateshop/internal/domain"
)

const cartTable = "cart_items"

// cartLineRow is the joined row served to the storefront: the line id,
// its quantity, and the embedded product.
type cartLineRow struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Product  *domain.Product `json:"product"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "Identificador de usuario inválido")
		return
	}

	var rows []cartLineRow
	err := s.platform.From(cartTable).
		Select("id,quantity,product:products(*)").
		Eq("user_id", userID).
		Order("id", true).
		Get(r.Context(), &rows)
	if err != nil {
		respondPlatformError(w, err, "Error al obtener el carrito")
		return
	}
	if rows == nil {
		rows = []cartLineRow{}
	}

	respondData(w, http.StatusOK, rows)
}

type addCartLineRequest struct {
	UserID    string `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// handleAddCartLine upserts keyed on (user_id, product_id). An existing
// line is incremented by the requested quantity rather than overwritten,
// so two adds of the same product end as one line with quantity 2.
func (s *Server) handleAddCartLine(w http.ResponseWriter, r *http.Request) {
	var req addCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if req.UserID == "" || req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "Usuario y producto son obligatorios")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "La cantidad debe ser al menos 1")
		return
	}

	var existing []struct {
		Quantity int `json:"quantity"`
	}
	err := s.platform.From(cartTable).Select("quantity").
		Eq("user_id", req.UserID).
		Eq("product_id", req.ProductID).
		Get(r.Context(), &existing)
	if err != nil {
		respondPlatformError(w, err, "Error al agregar al carrito")
		return
	}

	quantity := req.Quantity
	if len(existing) > 0 {
		quantity += existing[0].Quantity
	}

	row := map[string]any{
		"user_id":    req.UserID,
		"product_id": req.ProductID,
		"quantity":   quantity,
	}
	err = s.platform.From(cartTable).Upsert(r.Context(), row, "user_id,product_id", nil)
	if err != nil {
		respondPlatformError(w, err, "Error al agregar al carrito")
		return
	}

	respondMessage(w, http.StatusCreated, "Producto agregado al carrito", nil)
}

type updateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleUpdateCartLine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Identificador de línea inválido")
		return
	}

	var req updateCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "La cantidad debe ser al menos 1")
		return
	}

	err = s.platform.From(cartTable).Eq("id", id).
		Update(r.Context(), map[string]int{"quantity": req.Quantity}, nil)
	if err != nil {
		respondPlatformError(w, err, "Error al actualizar la cantidad")
		return
	}

	respondMessage(w, http.StatusOK, "Cantidad actualizada", nil)
}

func (s *Server) handleRemoveCartLine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Identificador de línea inválido")
		return
	}

	if err := s.platform.From(cartTable).Eq("id", id).Delete(r.Context()); err != nil {
		respondPlatformError(w, err, "Error al eliminar del carrito")
		return
	}

	respondMessage(w, http.StatusOK, "Producto eliminado del carrito", nil)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "Identificador de usuario inválido")
		return
	}

	if err := s.platform.From(cartTable).Eq("user_id", userID).Delete(r.Context()); err != nil {
		respondPlatformError(w, err, "Error al vaciar el carrito")
		return
	}

	respondMessage(w, http.StatusOK, "Carrito vaciado", nil)
}
