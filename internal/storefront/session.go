package storefront

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/SaulT-G/skateshop/internal/client"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/obs"
	"github.com/SaulT-G/skateshop/internal/ui"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// Session owns the authenticated identity and mirrors it to the local
// snapshot store for reload survival.
type Session struct {
	api       Gateway
	sdk       PlatformSession
	store     SnapshotStore
	notifier  Notifier
	confirmer Confirmer

	mu       sync.RWMutex
	identity *domain.Identity
}

func NewSession(api Gateway, sdk PlatformSession, store SnapshotStore, notifier Notifier, confirmer Confirmer) *Session {
	return &Session{
		api:       api,
		sdk:       sdk,
		store:     store,
		notifier:  notifier,
		confirmer: confirmer,
	}
}

// Identity returns the current identity, or nil when anonymous.
func (s *Session) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) setIdentity(identity *domain.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
}

// Login is all-or-nothing: on any failure no partial identity is stored
// and the prior state stays untouched.
func (s *Session) Login(ctx context.Context, credential, password string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" || password == "" {
		s.notifier.Notify("Por favor completa todos los campos", ui.SeverityError)
		return validationErr("campos incompletos")
	}

	identity, session, err := s.api.Login(ctx, credential, password)
	if err != nil {
		s.notifyFailure(err, "Usuario o contraseña incorrectos")
		return err
	}

	s.setIdentity(identity)
	if err := s.store.Save(identity); err != nil {
		obs.Logger.Warn("identity snapshot save failed", "err", err)
	}
	if session != nil {
		s.sdk.SetSession(session)
	}

	s.notifier.Notify(fmt.Sprintf("¡Bienvenido %s!", identity.FullName), ui.SeveritySuccess)
	return nil
}

// RegisterForm carries the sign-up input including the confirmation
// field, which never leaves the client.
type RegisterForm struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f RegisterForm) validate() error {
	if strings.TrimSpace(f.FullName) == "" || strings.TrimSpace(f.Username) == "" ||
		strings.TrimSpace(f.Email) == "" || f.Password == "" || f.ConfirmPassword == "" {
		return validationErr("Por favor completa todos los campos")
	}
	if f.Password != f.ConfirmPassword {
		return validationErr("Las contraseñas no coinciden")
	}
	if len(f.Password) < minPasswordLen {
		return validationErr("La contraseña debe tener al menos 6 caracteres")
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		return validationErr("Por favor ingresa un email válido")
	}
	return nil
}

// Register pre-validates locally, with zero network cost on rejection.
// Success never auto-authenticates; the caller routes to the login view.
func (s *Session) Register(ctx context.Context, form RegisterForm) error {
	if err := form.validate(); err != nil {
		s.notifier.Notify(err.Error(), ui.SeverityError)
		return err
	}

	err := s.api.Register(ctx, client.RegisterForm{
		FullName: strings.TrimSpace(form.FullName),
		Username: strings.TrimSpace(form.Username),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if err != nil {
		s.notifyFailure(err, "Error al registrarse")
		return err
	}

	s.notifier.Notify("¡Registro exitoso! Por favor inicia sesión", ui.SeveritySuccess)
	return nil
}

// Restore prefers a live platform session over the local snapshot, so a
// server-side revocation is never overridden by stale local state. It
// returns the restored identity, or nil for anonymous.
func (s *Session) Restore(ctx context.Context) *domain.Identity {
	identity, err := s.sdk.CurrentProfile(ctx)
	if err == nil && identity != nil {
		s.setIdentity(identity)
		if errSave := s.store.Save(identity); errSave != nil {
			obs.Logger.Warn("identity snapshot save failed", "err", errSave)
		}
		return identity
	}
	if err != nil && !errors.Is(err, ErrNoLiveSession) {
		obs.Logger.Warn("live session check failed", "err", err)
	}

	saved, err := s.store.Load()
	if err == nil {
		s.setIdentity(saved)
		return saved
	}

	return nil
}

// Logout asks for confirmation, then clears local state unconditionally;
// only the platform sign-out's own error is logged. Returns whether the
// logout actually happened.
func (s *Session) Logout(ctx context.Context) bool {
	confirmed := s.confirmer.Confirm(ui.Options{
		Icon:        "👋",
		Title:       "Cerrar Sesión",
		Message:     "¿Estás seguro de que deseas cerrar sesión?",
		ConfirmText: "Sí, cerrar sesión",
		CancelText:  "Cancelar",
	})
	if !confirmed {
		return false
	}

	if err := s.sdk.SignOut(ctx); err != nil {
		obs.Logger.Warn("platform sign out failed", "err", err)
	}

	s.setIdentity(nil)
	if err := s.store.Clear(); err != nil {
		obs.Logger.Warn("identity snapshot clear failed", "err", err)
	}

	s.notifier.Notify("Sesión cerrada exitosamente", ui.SeveritySuccess)
	return true
}

// notifyFailure maps the error taxonomy onto user-visible notices:
// collaborator messages verbatim, transport failures as a generic
// connection notice.
func (s *Session) notifyFailure(err error, fallback string) {
	var collabErr *client.CollaboratorError
	switch {
	case errors.As(err, &collabErr):
		msg := collabErr.Message
		if msg == "" {
			msg = fallback
		}
		s.notifier.Notify(msg, ui.SeverityError)
	case errors.Is(err, client.ErrNetwork):
		s.notifier.Notify("Error de conexión con el servidor", ui.SeverityError)
	default:
		s.notifier.Notify(fallback, ui.SeverityError)
	}
}
