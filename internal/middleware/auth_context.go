package middleware

import (
	"context"
	"net/http"
	"strings"

	"vetco/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// SessionCookie es la cookie HTTP-only que guarda el access token.
const SessionCookie = "vetco_session"

// SessionResolver resuelve un access token a claims (con cache por proceso).
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (auth.Claims, bool)
}

// AuthContext:
// - Si resolver != nil => toma el token de la cookie de sesión o del header
//   Authorization: Bearer, lo resuelve y setea claims.
// - Si resolver == nil => modo dev: header X-Debug-User-ID setea claims
//   directo (mismo mecanismo que usan los tests end-to-end).
// - Un token inválido no corta el request: sesión ausente, el guard y los
//   handlers deciden redirect/401.
func AuthContext(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					claims := auth.Claims{UserID: uid}
					ctx := context.WithValue(r.Context(), claimsKey, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := resolver.Resolve(r.Context(), token)
			if !ok {
				// Sesión vencida o token inválido => sigue sin claims.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// sessionToken prefiere la cookie de sesión; como fallback acepta
// Authorization: Bearer (clientes API).
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
