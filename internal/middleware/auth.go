// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for user ID.
	UserIDKey ContextKey = "user_id"
	// CompanyIDKey is the context key for company ID.
	CompanyIDKey ContextKey = "company_id"
	// PlanTagKey is the context key for the active subscription plan tag.
	PlanTagKey ContextKey = "plan_tag"
)

// Claims represents JWT claims. The subscription collaborator embeds the
// caller's company workspace and active plan tag in the token.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	PlanTag   string `json:"plan"`
}

// Auth creates JWT authentication middleware.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization header format"}`, http.StatusUnauthorized)
				return
			}

			tokenString := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			// Add claims to context
			ctx := context.WithValue(r.Context(), UserIDKey, claims.Subject)
			ctx = context.WithValue(ctx, CompanyIDKey, claims.CompanyID)
			ctx = context.WithValue(ctx, PlanTagKey, claims.PlanTag)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID gets user ID from context.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetCompanyID gets company ID from context.
func GetCompanyID(ctx context.Context) string {
	if v := ctx.Value(CompanyIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetPlanTag gets the caller's active plan tag from context. Empty means no
// active subscription.
func GetPlanTag(ctx context.Context) string {
	if v := ctx.Value(PlanTagKey); v != nil {
		return v.(string)
	}
	return ""
}
