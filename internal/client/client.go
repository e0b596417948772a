// Package client is the storefront's typed HTTP client for the gateway
// surface. Every response uses the {success, message?, data?} envelope;
// decoding failures and transport failures map onto the error taxonomy
// in errors.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/platform"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	User    *domain.Identity  `json:"user"`
	Session *platform.Session `json:"session"`
}

func (c *Client) doEnvelope(ctx context.Context, method, path string, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkErr(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, networkErr(err)
	}
	if !env.Success {
		return nil, &CollaboratorError{Message: env.Message}
	}
	return &env, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*envelope, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.doEnvelope(ctx, method, path, contentType, body)
}

// Login exchanges a username-or-email credential for the identity and,
// when the collaborator issues them, session tokens.
func (c *Client) Login(ctx context.Context, credential, password string) (*domain.Identity, *platform.Session, error) {
	env, err := c.doJSON(ctx, "POST", "/auth/login", map[string]string{
		"username": credential,
		"password": password,
	})
	if err != nil {
		return nil, nil, err
	}
	if env.User == nil {
		return nil, nil, &CollaboratorError{Message: env.Message}
	}
	return env.User, env.Session, nil
}

// RegisterForm carries the sign-up fields. Validation happens in the
// session layer before this client is ever reached.
type RegisterForm struct {
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, form RegisterForm) error {
	_, err := c.doJSON(ctx, "POST", "/auth/register", form)
	return err
}

// Products fetches the catalog; a non-empty search term asks the server
// for a case-insensitive title match.
func (c *Client) Products(ctx context.Context, search string) ([]domain.Product, error) {
	path := "/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	env, err := c.doEnvelope(ctx, "GET", path, "", nil)
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, networkErr(err)
	}
	return products, nil
}

// ProductForm is the multipart payload for product create/update.
type ProductForm struct {
	Title     string
	Detail    string
	Stock     int
	Price     float64
	Image     io.Reader // nil keeps the existing image
	ImageName string
}

func (c *Client) writeProductForm(form ProductForm) (string, io.Reader, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"titulo":   form.Title,
		"detalle":  form.Detail,
		"cantidad": fmt.Sprintf("%d", form.Stock),
		"precio":   fmt.Sprintf("%.2f", form.Price),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return "", nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if form.Image != nil {
		fw, err := mw.CreateFormFile("imagen", form.ImageName)
		if err != nil {
			return "", nil, fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(fw, form.Image); err != nil {
			return "", nil, fmt.Errorf("copy image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", nil, fmt.Errorf("finish multipart body: %w", err)
	}
	return mw.FormDataContentType(), &buf, nil
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (domain.Product, error) {
	return c.sendProduct(ctx, "POST", "/products", form)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, form ProductForm) (domain.Product, error) {
	return c.sendProduct(ctx, "PUT", fmt.Sprintf("/products/%d", id), form)
}

func (c *Client) sendProduct(ctx context.Context, method, path string, form ProductForm) (domain.Product, error) {
	contentType, body, err := c.writeProductForm(form)
	if err != nil {
		return domain.Product{}, err
	}
	env, err := c.doEnvelope(ctx, method, path, contentType, body)
	if err != nil {
		return domain.Product{}, err
	}
	var product domain.Product
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &product); err != nil {
			return domain.Product{}, networkErr(err)
		}
	}
	return product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.doEnvelope(ctx, "DELETE", fmt.Sprintf("/products/%d", id), "", nil)
	return err
}

// cartRow is the wire shape of one cart line.
type cartRow struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Product  *domain.Product `json:"product"`
}

// Cart loads the identity's cart lines, flattened into the client mirror
// shape.
func (c *Client) Cart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	env, err := c.doEnvelope(ctx, "GET", "/cart/"+url.PathEscape(userID), "", nil)
	if err != nil {
		return nil, err
	}
	var rows []cartRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, networkErr(err)
	}
	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		line := domain.CartLine{ID: row.ID, Quantity: row.Quantity}
		if row.Product != nil {
			line.ProductID = row.Product.ID
			line.Title = row.Product.Title
			line.Detail = row.Product.Detail
			line.Price = row.Product.Price
			line.ImageURL = row.Product.ImageURL
			line.Stock = row.Product.Stock
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddCartLine upserts a line keyed on (user, product); the collaborator
// increments an existing line rather than duplicating it.
func (c *Client) AddCartLine(ctx context.Context, userID string, productID int64, quantity int) error {
	_, err := c.doJSON(ctx, "POST", "/cart", map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return err
}

func (c *Client) UpdateCartLine(ctx context.Context, lineID int64, quantity int) error {
	_, err := c.doJSON(ctx, "PUT", fmt.Sprintf("/cart/%d", lineID), map[string]int{
		"quantity": quantity,
	})
	return err
}

func (c *Client) RemoveCartLine(ctx context.Context, lineID int64) error {
	_, err := c.doEnvelope(ctx, "DELETE", fmt.Sprintf("/cart/%d", lineID), "", nil)
	return err
}

func (c *Client) ClearCart(ctx context.Context, userID string) error {
	_, err := c.doEnvelope(ctx, "DELETE", "/cart/clear/"+url.PathEscape(userID), "", nil)
	return err
}
