// Package gateway is the REST facade the storefront talks to. It proxies
// authentication, catalog, and cart operations to the hosted platform
// and keeps a keyed cache in front of the unfiltered product list.
package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SaulT-G/skateshop/internal/cache"
	"github.com/SaulT-G/skateshop/internal/obs"
	"github.com/SaulT-G/skateshop/internal/platform"
)

type Server struct {
	platform  *platform.Client
	cache     cache.Cache
	maxUpload int64
}

func NewServer(pc *platform.Client, c cache.Cache, maxUpload int64) *Server {
	if c == nil {
		c = cache.NewMemory(0)
	}
	return &Server{platform: pc, cache: c, maxUpload: maxUpload}
}

// Routes assembles the router. All endpoints live under /api.
func (s *Server) Routes(timeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(logRequests)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(cors)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Post("/", s.handleCreateProduct)
			r.Put("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/{userId}", s.handleGetCart)
			r.Post("/", s.handleAddCartLine)
			r.Put("/{id}", s.handleUpdateCartLine)
			r.Delete("/clear/{userId}", s.handleClearCart)
			r.Delete("/{id}", s.handleRemoveCartLine)
		})
	})

	return r
}

// respondPlatformError translates a platform failure into the envelope.
// Messages from the platform pass through verbatim so the storefront can
// surface them.
func respondPlatformError(w http.ResponseWriter, err error, fallback string) {
	obs.Logger.Error("platform call failed", "err", err)
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		respondError(w, http.StatusInternalServerError, apiErr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, fallback)
}
