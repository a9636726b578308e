package mw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const splitSize = 2

// The identity provider signs session tokens with a secret shared with this
// service. We only verify; we never issue tokens in production, so a user id
// here is whatever opaque subject the provider minted.
var secretKey []byte

type userCtxKeyType int

const userCtxKey userCtxKeyType = iota

func SetSecretKey(key []byte) {
	secretKey = key
}

// SignToken mints a token the way the identity provider does. Used by local
// tooling and the e2e tests; production tokens come from the provider.
func SignToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(secretKey) == 0 {
			http.Error(w, `{"message":"auth secret not configured"}`, http.StatusInternalServerError)
			return
		}
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(authHeader, " ", splitSize)
		if len(parts) != splitSize || parts[0] != "Bearer" {
			http.Error(w, `{"message":"invalid token format"}`, http.StatusUnauthorized)
			return
		}
		tokenStr := parts[1]
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, http.ErrNoCookie
			}
			return secretKey, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func MustGetUserID(ctx context.Context) string {
	val := ctx.Value(userCtxKey)
	if val == nil {
		return ""
	}
	return val.(string)
}
