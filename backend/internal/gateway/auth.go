// ============================================================================
// backend/internal/gateway/auth.go
// Coordinator JWT issuing, parsing and the auth middleware
// ============================================================================

package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"uniportal/backend/internal/gateway/handlers"
	"uniportal/backend/internal/gateway/util"
	"uniportal/backend/internal/shared"
)

// CustomClaims for JWT
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and validates coordinator tokens.
type Authenticator struct {
	security shared.SecurityConfig
}

// NewAuthenticator creates an Authenticator from security configuration.
func NewAuthenticator(security shared.SecurityConfig) *Authenticator {
	return &Authenticator{security: security}
}

// GenerateToken creates a signed JWT for the given coordinator.
func (a *Authenticator) GenerateToken(userID, role string) (string, time.Time, error) {
	expirationTime := time.Now().Add(time.Duration(a.security.JWTExpirationHours) * time.Hour)

	claims := CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique ID (jti) keeps tokens distinct even when generated at
			// the same timestamp.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "uniportal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.security.JWTSecret))

	return tokenString, expirationTime, err
}

// ParseToken validates the JWT signature and extracts claims.
func (a *Authenticator) ParseToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.security.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthMiddleware rejects requests without a valid bearer token and injects
// the claims into the request context.
func (a *Authenticator) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := util.ExtractToken(r)
		if err != nil {
			util.WriteJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := a.ParseToken(tokenString)
		if err != nil {
			util.WriteJSONError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := handlers.WithClaims(r.Context(), &handlers.AuthClaims{
			UserID: claims.UserID,
			Role:   claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
