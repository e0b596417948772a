package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/obs"
)

type registerRequest struct {
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an account. Every account registers as a buyer;
// admin accounts are provisioned out of band.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Todos los campos son obligatorios")
		return
	}

	_, err := s.platform.SignUp(r.Context(), req.Email, req.Password, map[string]any{
		"fullname": req.FullName,
		"username": req.Username,
		"role":     string(domain.RoleBuyer),
	})
	if err != nil {
		respondPlatformError(w, err, "Error al registrar usuario")
		return
	}

	respondMessage(w, http.StatusCreated, "Usuario registrado exitosamente", nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin signs in with a username or an email. A credential without
// an @ is resolved to its email through the profiles table first; any
// failure along the way collapses into the same generic message.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Usuario y contraseña son obligatorios")
		return
	}

	email := req.Username
	if !strings.Contains(email, "@") {
		var row struct {
			Email string `json:"email"`
		}
		err := s.platform.From("profiles").Select("email").
			Eq("username", req.Username).Single().Get(r.Context(), &row)
		if err != nil || row.Email == "" {
			respondError(w, http.StatusUnauthorized, "Credenciales incorrectas")
			return
		}
		email = row.Email
	}

	session, err := s.platform.SignInWithPassword(r.Context(), email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Credenciales incorrectas")
		return
	}

	identity := domain.Identity{Role: domain.RoleBuyer}
	if session.User != nil {
		err := s.platform.From("profiles").Select("*").
			Eq("id", session.User.ID).Single().Get(r.Context(), &identity)
		if err != nil {
			obs.Logger.Warn("profile lookup after sign-in failed", "err", err)
			identity = domain.Identity{ID: session.User.ID, Role: domain.RoleBuyer}
		}
		if identity.Email == "" {
			identity.Email = session.User.Email
		}
	}

	respondJSON(w, http.StatusOK, envelope{
		Success: true,
		User:    identity,
		Session: session,
	})
}
