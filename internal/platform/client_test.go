package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "anon-key")
}

func TestSignInWithPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])

		json.NewEncoder(w).Encode(Session{
			AccessToken:  "at",
			RefreshToken: "rt",
			User:         &User{ID: "u-1", Email: "ana@example.com"},
		})
	})

	session, err := client.SignInWithPassword(context.Background(), "ana@example.com", "secreta")
	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "u-1", session.User.ID)
}

func TestSignInWrongCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	})

	_, err := client.SignInWithPassword(context.Background(), "ana@example.com", "mala")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestSessionTokenUsedAsBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		json.NewEncoder(w).Encode(User{ID: "u-1"})
	})

	client.SetSession(&Session{AccessToken: "user-token"})
	require.True(t, client.HasSession())

	user, err := client.AuthUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	client.ClearSession()
	assert.False(t, client.HasSession())
}

func TestTableQueryPath(t *testing.T) {
	var gotURL string
	var gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(map[string]any{"id": "p-1"})
	})

	var row struct {
		ID string `json:"id"`
	}
	err := client.From("profiles").Select("*").Eq("username", "ana").Single().Get(context.Background(), &row)
	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/profiles?select=%2A&username=eq.ana", gotURL)
	assert.Equal(t, "application/vnd.pgrst.object+json", gotAccept)
	assert.Equal(t, "p-1", row.ID)
}

func TestTableOrderAndILike(t *testing.T) {
	var gotURL string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte("[]"))
	})

	var rows []struct{}
	err := client.From("products").ILike("titulo", "*tabla*").Order("created_at", false).Get(context.Background(), &rows)
	require.NoError(t, err)
	assert.Contains(t, gotURL, "titulo=ilike.%2Atabla%2A")
	assert.Contains(t, gotURL, "order=created_at.desc")
}

func TestUpsertHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "user_id,product_id", r.URL.Query().Get("on_conflict"))
		assert.Contains(t, r.Header.Get("Prefer"), "merge-duplicates")
		assert.Contains(t, r.Header.Get("Prefer"), "return=representation")
		json.NewEncoder(w).Encode(map[string]any{"id": 9})
	})

	var row struct {
		ID int64 `json:"id"`
	}
	err := client.From("cart").Upsert(context.Background(), map[string]any{
		"user_id":    "u-1",
		"product_id": 7,
		"quantity":   1,
	}, "user_id,product_id", &row)
	require.NoError(t, err)
	assert.Equal(t, int64(9), row.ID)
}

func TestUploadAndPublicURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/storage/v1/object/product-images/products/deck.png", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Upload(context.Background(), "product-images", "products/deck.png", []byte("png"), "image/png")
	require.NoError(t, err)

	url := client.PublicURL("product-images", "products/deck.png")
	assert.Contains(t, url, "/storage/v1/object/public/product-images/products/deck.png")
}
