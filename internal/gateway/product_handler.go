package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SaulT-G/skateshop/internal/cache"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/obs"
)

const (
	productsTable   = "products"
	productCacheKey = "products"
	imageBucket     = "product-images"
)

// handleListProducts serves the catalog. The unfiltered list runs
// cache-aside; a search term always round-trips so results track the
// live table.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	if search == "" {
		if raw, err := s.cache.Get(r.Context(), productCacheKey); err == nil {
			respondData(w, http.StatusOK, json.RawMessage(raw))
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			obs.Logger.Warn("product cache read failed", "err", err)
		}
	}

	q := s.platform.From(productsTable).Select("*").Order("created_at", false)
	if search != "" {
		q = q.ILike("titulo", "*"+search+"*")
	}
	var products []domain.Product
	if err := q.Get(r.Context(), &products); err != nil {
		respondPlatformError(w, err, "Error al obtener productos")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	if search == "" {
		if raw, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(r.Context(), productCacheKey, raw); err != nil {
				obs.Logger.Warn("product cache write failed", "err", err)
			}
		}
	}

	respondData(w, http.StatusOK, products)
}

// productInput is the parsed multipart form, with the image already
// uploaded when one was sent.
type productInput struct {
	Title    string
	Detail   string
	Stock    int
	Price    float64
	ImageURL string // empty when no new image arrived
}

func (s *Server) parseProductForm(r *http.Request) (productInput, error) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return productInput{}, errors.New("Formulario inválido")
	}

	in := productInput{
		Title:  strings.TrimSpace(r.FormValue("titulo")),
		Detail: strings.TrimSpace(r.FormValue("detalle")),
	}
	if in.Title == "" {
		return productInput{}, errors.New("El título es obligatorio")
	}

	stock, err := strconv.Atoi(r.FormValue("cantidad"))
	if err != nil || stock < 0 || stock > domain.MaxStock {
		return productInput{}, fmt.Errorf("Cantidad inválida. Debe estar entre 0 y %d", domain.MaxStock)
	}
	in.Stock = stock

	price, err := strconv.ParseFloat(r.FormValue("precio"), 64)
	if err != nil || price < 0 || price > domain.MaxPrice {
		return productInput{}, fmt.Errorf("Precio inválido. Debe estar entre 0 y %.2f", domain.MaxPrice)
	}
	in.Price = price

	file, header, err := r.FormFile("imagen")
	if err == http.ErrMissingFile {
		return in, nil
	}
	if err != nil {
		return productInput{}, errors.New("Imagen inválida")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload))
	if err != nil {
		return productInput{}, errors.New("Imagen inválida")
	}

	objectPath := uuid.NewString() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.platform.Upload(r.Context(), imageBucket, objectPath, data, contentType); err != nil {
		obs.Logger.Error("image upload failed", "err", err)
		return productInput{}, errors.New("Error al subir la imagen")
	}
	in.ImageURL = s.platform.PublicURL(imageBucket, objectPath)
	return in, nil
}

func (s *Server) invalidateProducts(ctx context.Context) {
	if err := s.cache.Delete(ctx, productCacheKey); err != nil {
		obs.Logger.Warn("product cache invalidation failed", "err", err)
	}
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	row := map[string]any{
		"titulo":   in.Title,
		"detalle":  in.Detail,
		"cantidad": in.Stock,
		"precio":   in.Price,
	}
	if in.ImageURL != "" {
		row["imagen_url"] = in.ImageURL
	}

	var product domain.Product
	if err := s.platform.From(productsTable).Single().Insert(r.Context(), row, &product); err != nil {
		respondPlatformError(w, err, "Error al crear producto")
		return
	}

	s.invalidateProducts(r.Context())
	respondMessage(w, http.StatusCreated, "Producto creado exitosamente", product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Identificador de producto inválido")
		return
	}

	in, err := s.parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	values := map[string]any{
		"titulo":   in.Title,
		"detalle":  in.Detail,
		"cantidad": in.Stock,
		"precio":   in.Price,
	}
	// Absent image keeps the stored URL.
	if in.ImageURL != "" {
		values["imagen_url"] = in.ImageURL
	}

	var product domain.Product
	err = s.platform.From(productsTable).Eq("id", id).Single().Update(r.Context(), values, &product)
	if err != nil {
		respondPlatformError(w, err, "Error al actualizar producto")
		return
	}

	s.invalidateProducts(r.Context())
	respondMessage(w, http.StatusOK, "Producto actualizado exitosamente", product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Identificador de producto inválido")
		return
	}

	if err := s.platform.From(productsTable).Eq("id", id).Delete(r.Context()); err != nil {
		respondPlatformError(w, err, "Error al eliminar producto")
		return
	}

	s.invalidateProducts(r.Context())
	respondMessage(w, http.StatusOK, "Producto eliminado correctamente", nil)
}
