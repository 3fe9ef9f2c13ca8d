// Package account provides the public HTTP handlers for registration and
// password reset. These endpoints are reachable without a token.
package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
	accUC "newsdesk/internal/usecase/account"
)

// UserDTO represents the JSON structure returned after registration. The
// password hash is never serialized.
type UserDTO struct {
	ID          int64     `json:"id" example:"1"`
	Username    string    `json:"username" example:"lois"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Role        string    `json:"role" example:"reader"`
	PublisherID *int64    `json:"publisher_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		PublisherID: u.PublisherID,
		CreatedAt:   u.CreatedAt,
	}
}

type RegisterHandler struct{ Svc *accUC.Service }

// ServeHTTP registers a new account. The role defaults to reader when
// omitted.
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Role        string `json:"role"`
		PublisherID *int64 `json:"publisher_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Role == "" {
		req.Role = string(entity.RoleReader)
	}

	user, err := h.Svc.Register(r.Context(), accUC.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        entity.Role(req.Role),
		PublisherID: req.PublisherID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(user))
}

type PasswordResetHandler struct{ Svc *accUC.Service }

// ServeHTTP starts a password reset. The response is identical whether or
// not the email belongs to an account.
func (h PasswordResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	if err := h.Svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusAccepted, map[string]string{
		"message": "if the address belongs to an account, a reset email has been sent",
	})
}

type PasswordResetConfirmHandler struct{ Svc *accUC.Service }

// ServeHTTP redeems a reset token and sets the new password.
func (h PasswordResetConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Token == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("token is required"))
		return
	}

	if err := h.Svc.ConfirmPasswordReset(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, accUC.ErrInvalidResetToken):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, accUC.ErrDuplicateAccount):
		respond.Error(w, http.StatusConflict, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Register registers the public account routes with the given mux.
func Register(mux *http.ServeMux, svc *accUC.Service) {
	mux.Handle("POST /auth/register", RegisterHandler{svc})
	mux.Handle("POST /auth/password-reset", PasswordResetHandler{svc})
	mux.Handle("POST /auth/password-reset/confirm", PasswordResetConfirmHandler{svc})
}
