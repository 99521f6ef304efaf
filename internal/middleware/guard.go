package middleware

import (
	"net/http"
	"strings"
)

// Rutas protegidas y rutas solo-auth (login/registro/reset).
// Todo lo demás es público.
var (
	protectedRoutes = []string{"/dashboard", "/profile", "/messages"}
	authRoutes      = []string{"/login", "/register", "/forgot-password", "/reset-password"}
)

const (
	homePath  = "/dashboard"
	loginPath = "/login"
)

// Guard intercepta cada navegación antes del handler destino:
// - sesión presente + ruta solo-auth  => redirect a /dashboard
// - sesión ausente + ruta protegida   => redirect a /login
// - cualquier otro caso pasa sin tocar.
// Función pura de (presencia de sesión, path); no guarda estado.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated := GetClaims(r.Context())
		path := r.URL.Path

		if authenticated && matchesAny(path, authRoutes) {
			http.Redirect(w, r, homePath, http.StatusSeeOther)
			return
		}
		if !authenticated && matchesAny(path, protectedRoutes) {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// matchesAny usa match por prefijo de segmento: /dashboard y /dashboard/...
// matchean, /dashboardx no.
func matchesAny(path string, routes []string) bool {
	for _, route := range routes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}
