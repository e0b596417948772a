package storefront

import (
	"context"
	"fmt"

	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/platform"
)

// SDK adapts the raw platform client to the PlatformSession surface the
// core needs: token installation, live-session profile resolution and
// sign-out.
type SDK struct {
	client *platform.Client
}

func NewSDK(client *platform.Client) *SDK {
	return &SDK{client: client}
}

func (s *SDK) SetSession(session *platform.Session) {
	s.client.SetSession(session)
}

func (s *SDK) SignOut(ctx context.Context) error {
	return s.client.SignOut(ctx)
}

type profileRow struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CurrentProfile resolves the live session's account to its profile row.
func (s *SDK) CurrentProfile(ctx context.Context) (*domain.Identity, error) {
	if !s.client.HasSession() {
		return nil, ErrNoLiveSession
	}

	user, err := s.client.AuthUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve live session: %w", err)
	}

	var profile profileRow
	err = s.client.From("profiles").Select("*").Eq("id", user.ID).Single().Get(ctx, &profile)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", user.ID, err)
	}

	identity := &domain.Identity{
		ID:       user.ID,
		Email:    user.Email,
		FullName: profile.FullName,
		Username: profile.Username,
		Role:     domain.Role(profile.Role),
	}
	if identity.FullName == "" {
		identity.FullName = "Usuario"
	}
	if identity.Role == "" {
		identity.Role = domain.RoleBuyer
	}
	return identity, nil
}
