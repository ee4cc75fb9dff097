package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/lws/gateway/internal/api/response"
)

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// TenantHeader carries the caller's tenant id, set by the authenticating
// proxy in front of the gateway.
const TenantHeader = "X-Tenant-ID"

// AdminAuth returns a middleware that requires the admin token as a bearer
// token.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := extractBearerToken(r)
			if presented == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing admin token")
				return
			}
			if token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				response.WriteError(w, http.StatusUnauthorized, "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Tenant is a middleware that requires the tenant header and injects the
// tenant id into the request context.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
		if tenantID == "" {
			response.WriteError(w, http.StatusUnauthorized, "missing tenant identity")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

// WithTenantID returns a copy of ctx carrying tenantID.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// TenantID returns the tenant id injected by Tenant, or "".
func TenantID(ctx context.Context) string {
	id, _ := ctx.Value(tenantIDKey).(string)
	return id
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
