package platform

import (
	"context"
	"fmt"
)

// User is the platform's view of an account. Profile fields (fullname,
// username, role) live in the profiles table, not here.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// Session holds the exchangeable tokens issued on sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// SignUp creates an account. meta is stored as user metadata and copied
// into the profiles row by the platform.
func (c *Client) SignUp(ctx context.Context, email, password string, meta map[string]any) (*User, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if meta != nil {
		payload["data"] = meta
	}
	var out struct {
		ID    string         `json:"id"`
		Email string         `json:"email"`
		User  *User          `json:"user"`
		Meta  map[string]any `json:"user_metadata"`
	}
	if err := c.doJSON(ctx, "POST", "/auth/v1/signup", nil, payload, &out); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	// Depending on confirmation settings the platform returns either the
	// user directly or wrapped in a session envelope.
	if out.User != nil {
		return out.User, nil
	}
	return &User{ID: out.ID, Email: out.Email, Metadata: out.Meta}, nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var session Session
	if err := c.doJSON(ctx, "POST", "/auth/v1/token?grant_type=password", nil, payload, &session); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &session, nil
}

// AuthUser fetches the account behind the current session, reporting
// whether a live session exists at all.
func (c *Client) AuthUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, "GET", "/auth/v1/user", nil, nil, &user); err != nil {
		return nil, fmt.Errorf("fetch auth user: %w", err)
	}
	return &user, nil
}

// SignOut revokes the current session server-side and drops the local
// tokens regardless of the outcome.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.doJSON(ctx, "POST", "/auth/v1/logout", nil, nil, nil)
	c.ClearSession()
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// HasSession reports whether session tokens are installed.
func (c *Client) HasSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil && c.session.AccessToken != ""
}
