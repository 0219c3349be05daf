// Package middleware holds the HTTP middleware applied by the router.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const (
	accountIDKey ctxKey = iota
	tokenKey
)

// Authenticate verifies the bearer token signature and stores the caller's
// account id and the raw token on the request context. The raw token is
// forwarded unchanged to the ledger service on every movement call.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				unauthorized(w)
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil {
				unauthorized(w)
				return
			}

			accountID, _ := claims["account_id"].(string)
			if accountID == "" {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			ctx = context.WithValue(ctx, tokenKey, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountID returns the authenticated caller's account id, or "" when the
// request did not pass through Authenticate.
func AccountID(ctx context.Context) string {
	v, _ := ctx.Value(accountIDKey).(string)
	return v
}

// Token returns the raw bearer token carried by the request.
func Token(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"missing or invalid credentials"}`))
}
