package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/amreid/nextup/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// AuthMiddleware extracts the authenticated principal from a bearer token
// and provisions the user row on first sight. Session management beyond
// that is out of scope; tokens are minted elsewhere.
type AuthMiddleware struct {
	secret []byte
	users  repository.UserRepo
}

func NewAuthMiddleware(secret []byte, users repository.UserRepo) *AuthMiddleware {
	return &AuthMiddleware{secret: secret, users: users}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w)
			return
		}

		userID, email, err := parseToken(m.secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil || userID == "" {
			writeUnauthorized(w)
			return
		}

		if err := m.ensureUser(r.Context(), userID, email); err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) ensureUser(ctx context.Context, userID, email string) error {
	exists, err := m.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.users.Create(ctx, userID, email)
}

func parseToken(secret []byte, tokenString string) (userID, email string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	mail, _ := claims["email"].(string)
	return sub, mail, nil
}

// MintToken signs a token for the given user. Used by tests and the local
// dev token command.
func MintToken(secret []byte, userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// UserIDFromContext returns the authenticated user id set by the middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}
