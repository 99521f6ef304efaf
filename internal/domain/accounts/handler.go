package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vetco/internal/domain/users"
	"vetco/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AnimalStats expone el conteo de animales para el dashboard del farmer
// sin importar el paquete animals (rompe ciclos, como hace users con RoleOf).
type AnimalStats interface {
	CountByFarmer(ctx context.Context, farmerID string) (int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service, stats AnimalStats, log *zap.Logger) {
	r.Post("/register", registerHandler(svc, log))
	r.Post("/login", loginHandler(svc, log))
	r.Post("/logout", logoutHandler(svc, log))
	r.Post("/forgot-password", forgotPasswordHandler(svc, log))
	r.Post("/reset-password", resetPasswordHandler(svc, log))

	// Resolver de rol + dashboards por rol
	r.Get("/dashboard", dashboardHandler(usersSvc, log))
	r.Get("/dashboard/farmer", farmerDashboardHandler(usersSvc, stats))
	r.Get("/dashboard/vet", vetDashboardHandler(usersSvc))
	r.Get("/dashboard/admin", adminDashboardHandler(usersSvc))
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
}

// registerHandler godoc
// @Summary Registrar un usuario
// @Description Crea la cuenta en el proveedor de identidad y la fila de perfil. Valida localmente match y largo de password antes de cualquier llamada remota.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro; role en {farmer, vet, admin}"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errorResponse "Passwords do not match / password corta / rol inválido"
// @Failure 502 {object} errorResponse "Fallo del proveedor remoto"
// @Failure 503 {object} errorResponse "Proveedor de identidad no configurado"
// @Router /register [post]
func registerHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", "")
			return
		}

		_, err := svc.Register(r.Context(), RegisterInput{
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			FullName:        req.FullName,
			Role:            req.Role,
			Phone:           req.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error(), "")
			case errors.Is(err, ErrAuthUnavailable):
				writeError(w, http.StatusServiceUnavailable, err.Error(), "register")
			default:
				log.Error("register failed", zap.Error(err))
				writeError(w, http.StatusBadGateway, err.Error(), "register")
			}
			return
		}

		writeJSON(w, http.StatusCreated, messageResponse{
			Message: "Registration successful! Please check your email to confirm your account.",
		})
	}
}

func loginHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", "")
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "email and password required", "")
				return
			}
			if errors.Is(err, ErrAuthUnavailable) {
				writeError(w, http.StatusServiceUnavailable, err.Error(), "login")
				return
			}
			log.Warn("login failed", zap.Error(err))
			writeError(w, http.StatusUnauthorized, err.Error(), "login")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    sess.AccessToken,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   sess.ExpiresIn,
		})

		writeJSON(w, http.StatusOK, map[string]string{"redirect": "/dashboard"})
	}
}

// logoutHandler invalida la sesión y redirige a /login.
func logoutHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(middleware.SessionCookie); err == nil {
			token = c.Value
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			// Revocación remota fallida no bloquea el sign-out local.
			log.Warn("remote sign-out failed", zap.Error(err))
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func forgotPasswordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", "")
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "email required", "")
				return
			}
			if errors.Is(err, ErrAuthUnavailable) {
				writeError(w, http.StatusServiceUnavailable, err.Error(), "forgot-password")
				return
			}
			log.Error("password reset request failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, err.Error(), "forgot-password")
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{
			Message: "Check your email for the password reset link.",
		})
	}
}

func resetPasswordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirm_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", "")
			return
		}

		// El token de recuperación llega como bearer (link del mail de GoTrue).
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "recovery token required", "")
			return
		}

		if err := svc.ResetPassword(r.Context(), strings.TrimSpace(token), req.Password, req.ConfirmPassword); err != nil {
			switch {
			case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrPasswordTooShort):
				writeError(w, http.StatusBadRequest, err.Error(), "")
			case errors.Is(err, ErrAuthUnavailable):
				writeError(w, http.StatusServiceUnavailable, err.Error(), "reset-password")
			default:
				log.Error("password reset failed", zap.Error(err))
				writeError(w, http.StatusBadGateway, err.Error(), "reset-password")
			}
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated."})
	}
}

// dashboardHandler resuelve el rol y redirige al dashboard correspondiente.
// Rol ausente o desconocido: landing genérica con links manuales a los tres
// dashboards (fallback explícito, nunca un error hacia el usuario).
func dashboardHandler(usersSvc *users.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		role, err := usersSvc.RoleOf(r.Context(), claims.UserID)
		if err != nil {
			log.Error("role lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		}

		switch role {
		case users.RoleFarmer:
			http.Redirect(w, r, "/dashboard/farmer", http.StatusSeeOther)
		case users.RoleVet:
			http.Redirect(w, r, "/dashboard/vet", http.StatusSeeOther)
		case users.RoleAdmin:
			http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
		default:
			writeJSON(w, http.StatusOK, map[string]any{
				"title": "Dashboard",
				"links": []string{"/dashboard/farmer", "/dashboard/vet", "/dashboard/admin"},
			})
		}
	}
}

func farmerDashboardHandler(usersSvc *users.Service, stats AnimalStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireRole(w, r, usersSvc, users.RoleFarmer)
		if !ok {
			return
		}

		count, err := stats.CountByFarmer(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", "farmer-dashboard")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"role":    users.RoleFarmer,
			"animals": count,
			"links":   []string{"/animals"},
		})
	}
}

func vetDashboardHandler(usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, usersSvc, users.RoleVet); !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"role":  users.RoleVet,
			"links": []string{"/records/recent"},
		})
	}
}

func adminDashboardHandler(usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, usersSvc, users.RoleAdmin); !ok {
			return
		}

		counts, err := usersSvc.CountByRole(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", "admin-dashboard")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"role":  users.RoleAdmin,
			"users": counts,
		})
	}
}

// requireRole repite el chequeo de rol por página que hacía cada dashboard:
// rol distinto => redirect al resolver (nunca 403 en navegación).
func requireRole(w http.ResponseWriter, r *http.Request, usersSvc *users.Service, want users.Role) (claims claimsOut, ok bool) {
	c, has := middleware.GetClaims(r.Context())
	if !has || strings.TrimSpace(c.UserID) == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return claimsOut{}, false
	}

	role, err := usersSvc.RoleOf(r.Context(), c.UserID)
	if err != nil || role != want {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return claimsOut{}, false
	}

	return claimsOut{UserID: c.UserID, Email: c.Email}, true
}

type claimsOut struct {
	UserID string
	Email  string
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, action string) {
	writeJSON(w, status, errorResponse{Error: msg, Action: action})
}
