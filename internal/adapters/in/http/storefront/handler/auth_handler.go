// internal/adapters/in/http/storefront/handler/auth_handler.go
package storefrontHandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	usecase "storefront/internal/application/usecase"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	uc  *usecase.AuthUsecase
	log *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: nopIfNil(logger).Named("auth_handler")}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type sessionRequest struct {
	IDToken string `json:"idToken"`
}

type profileRequest struct {
	DisplayName string `json:"displayName"`
}

// POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "sign in", err)
		return
	}
	u, err := h.uc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUsecaseErr(w, h.log, "sign in", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "sign up", err)
		return
	}
	u, err := h.uc.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeUsecaseErr(w, h.log, "sign up", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": u})
}

// POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.SignOut(r.Context()); err != nil {
		writeUsecaseErr(w, h.log, "sign out", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": nil})
}

// POST /api/auth/session {idToken}
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "resume session", err)
		return
	}
	u, err := h.uc.ResumeSession(r.Context(), req.IDToken)
	if err != nil {
		writeUsecaseErr(w, h.log, "resume session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// PUT /api/auth/profile {displayName}
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "update profile", err)
		return
	}
	u, err := h.uc.UpdateProfile(r.Context(), req.DisplayName)
	if err != nil {
		writeUsecaseErr(w, h.log, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// POST /api/auth/favorites/{productId}
func (h *AuthHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	u, err := h.uc.ToggleFavorite(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeUsecaseErr(w, h.log, "toggle favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}
