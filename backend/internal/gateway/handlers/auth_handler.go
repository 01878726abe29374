// ============================================================================
// backend/internal/gateway/handlers/auth_handler.go
// Coordinator login
// ============================================================================

package handlers

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"uniportal/backend/internal/gateway/util"
	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

// TokenIssuer signs coordinator tokens; implemented by the gateway
// authenticator.
type TokenIssuer interface {
	GenerateToken(userID, role string) (string, time.Time, error)
}

// AuthHandler serves coordinator authentication.
type AuthHandler struct {
	Store  store.Store
	Tokens TokenIssuer
}

// RESTLoginRequest mirrors the JSON input for POST /auth/login
type RESTLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login
// Authenticates a coordinator by email and password and returns a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate input
	var req RESTLoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	// 2. Find the coordinator by email
	coordinators, err := h.Store.LoadCoordinators(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	email := shared.NormalizeEmail(req.Email)
	var coordinator *shared.Coordinator
	for i := range coordinators {
		if shared.NormalizeEmail(coordinators[i].Email) == email {
			coordinator = &coordinators[i]
			break
		}
	}
	if coordinator == nil {
		util.WriteJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// 3. Verify the password
	if err := bcrypt.CompareHashAndPassword([]byte(coordinator.PasswordHash), []byte(req.Password)); err != nil {
		util.WriteJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// 4. Issue a token
	token, expiresAt, err := h.Tokens.GenerateToken(coordinator.ID, "coordinator")
	if err != nil {
		util.WriteJSONError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"token":       token,
		"expires_at":  expiresAt,
		"coordinator": coordinator,
	})
}
