package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaulT-G/skateshop/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestLoginSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana", body["username"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user": domain.Identity{
				ID: "u-1", Email: "ana@example.com", FullName: "Ana Torres",
				Username: "ana", Role: domain.RoleBuyer,
			},
			"session": map[string]string{"access_token": "at", "refresh_token": "rt"},
		})
	})

	identity, session, err := c.Login(context.Background(), "ana", "secreta")
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, domain.RoleBuyer, identity.Role)
	require.NotNil(t, session)
	assert.Equal(t, "at", session.AccessToken)
}

func TestLoginCollaboratorError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Credenciales incorrectas",
		})
	})

	_, _, err := c.Login(context.Background(), "ana", "mala")
	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "Credenciales incorrectas", collabErr.Message)
}

func TestNetworkFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := c.Products(context.Background(), "")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestProductsSearchQuery(t *testing.T) {
	var gotSearch string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []domain.Product{
				{ID: 7, Title: "Tabla clásica", Price: 59.99, Stock: 3},
			},
		})
	})

	products, err := c.Products(context.Background(), "tabla clásica")
	require.NoError(t, err)
	assert.Equal(t, "tabla clásica", gotSearch)
	require.Len(t, products, 1)
	assert.Equal(t, int64(7), products[0].ID)
	assert.Equal(t, 3, products[0].Stock)
}

func TestCartFlattensRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/u-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{
					"id":       11,
					"quantity": 2,
					"product": domain.Product{
						ID: 7, Title: "Tabla clásica", Detail: "Arce 8.0",
						Price: 59.99, Stock: 3,
					},
				},
			},
		})
	})

	lines, err := c.Cart(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(11), lines[0].ID)
	assert.Equal(t, int64(7), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 3, lines[0].Stock)
	assert.InDelta(t, 119.98, lines[0].Total(), 0.001)
}

func TestAddCartLinePayload(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": 11}})
	})

	require.NoError(t, c.AddCartLine(context.Background(), "u-1", 7, 1))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, float64(7), body["product_id"])
	assert.Equal(t, float64(1), body["quantity"])
}

func TestCreateProductMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Tabla clásica", r.FormValue("titulo"))
		assert.Equal(t, "Arce 8.0", r.FormValue("detalle"))
		assert.Equal(t, "5", r.FormValue("cantidad"))
		assert.Equal(t, "59.99", r.FormValue("precio"))

		_, header, err := r.FormFile("imagen")
		require.NoError(t, err)
		assert.Equal(t, "deck.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    domain.Product{ID: 7, Title: "Tabla clásica"},
		})
	})

	product, err := c.CreateProduct(context.Background(), ProductForm{
		Title:     "Tabla clásica",
		Detail:    "Arce 8.0",
		Stock:     5,
		Price:     59.99,
		Image:     bytes.NewReader([]byte("png")),
		ImageName: "deck.png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
}

func TestUpdateProductWithoutImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/products/7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("imagen")
		assert.Error(t, err)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": domain.Product{ID: 7}})
	})

	_, err := c.UpdateProduct(context.Background(), 7, ProductForm{Title: "Tabla", Stock: 4, Price: 49.99})
	require.NoError(t, err)
}
