// ============================================================================
// backend/internal/gateway/handlers/handlers.go
// Shared handler plumbing: request decoding and validation
// ============================================================================

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"uniportal/backend/internal/shared"
)

var validate = validator.New()

// AuthClaims is the authenticated identity the auth middleware attaches to
// the request context.
type AuthClaims struct {
	UserID string
	Role   string
}

type claimsContextKey struct{}

// WithClaims returns a context carrying the authenticated claims.
func WithClaims(ctx context.Context, claims *AuthClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromRequest returns the authenticated claims, or false outside the
// auth middleware.
func ClaimsFromRequest(r *http.Request) (*AuthClaims, bool) {
	claims, ok := r.Context().Value(claimsContextKey{}).(*AuthClaims)
	return claims, ok
}

// decodeAndValidate decodes a JSON request body into req and runs struct
// validation. Failures come back as ValidationError so they surface as 400s.
func decodeAndValidate(r *http.Request, req interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return shared.NewValidationError("body", "malformed JSON request body")
	}
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return shared.NewValidationError(errs[0].Field(), "failed "+errs[0].Tag()+" validation")
		}
		return shared.NewValidationError("body", err.Error())
	}
	return nil
}
