package users

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"vetco/internal/domain/uploads"
	"vetco/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AvatarUploader sube el archivo y devuelve el path relativo en storage.
// PublicURL resuelve la URL servible al momento de responder.
type AvatarUploader interface {
	Upload(ctx context.Context, ownerID, filename string, size int64, r io.Reader) (string, error)
	PublicURL(objectPath string) string
	MaxSizeBytes() int64
}

func RegisterRoutes(r chi.Router, svc *Service, avatars AvatarUploader, log *zap.Logger) {
	r.Get("/profile", getProfileHandler(svc, avatars))
	r.Put("/profile", updateProfileHandler(svc, avatars))
	r.Post("/profile/avatar", uploadAvatarHandler(svc, avatars, log))
}

type profileResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Organization string    `json:"organization"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProfileResponse(u User, avatars AvatarUploader) profileResponse {
	resp := profileResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		Phone:        u.Phone,
		Address:      u.Address,
		Organization: u.Organization,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.AvatarPath != "" && avatars != nil {
		resp.AvatarURL = avatars.PublicURL(u.AvatarPath)
	}
	return resp
}

func getProfileHandler(svc *Service, avatars AvatarUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(u, avatars))
	}
}

// updateProfileRequest: punteros para distinguir "campo ausente" de "campo
// vacío". email y role se ignoran aunque el cliente los mande.
type updateProfileRequest struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Organization *string `json:"organization"`
	Bio          *string `json:"bio"`
}

// updateProfileHandler godoc
// @Summary Actualizar el perfil propio
// @Description PATCH parcial de los campos mutables. email y role son inmutables: se ignoran si vienen en el cuerpo.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body updateProfileRequest true "Campos a actualizar (los ausentes no cambian)"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /profile [put]
func updateProfileHandler(svc *Service, avatars AvatarUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateProfileInput{
			FullName:     req.FullName,
			Phone:        req.Phone,
			Address:      req.Address,
			Organization: req.Organization,
			Bio:          req.Bio,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(u, avatars))
	}
}

// uploadAvatarHandler recibe multipart (campo "avatar"), sube al bucket y
// guarda el path en el perfil. El límite de tamaño se chequea contra la
// metadata del part antes de leer el contenido.
func uploadAvatarHandler(svc *Service, avatars AvatarUploader, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(avatars.MaxSizeBytes()); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			http.Error(w, "avatar file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		path, err := avatars.Upload(r.Context(), claims.UserID, header.Filename, header.Size, file)
		if err != nil {
			switch {
			case errors.Is(err, uploads.ErrTooLarge),
				errors.Is(err, uploads.ErrEmptyFile),
				errors.Is(err, uploads.ErrBadFilename),
				errors.Is(err, uploads.ErrSizeMismatch):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Error("avatar upload failed", zap.String("user_id", claims.UserID), zap.Error(err))
				http.Error(w, "upload failed", http.StatusBadGateway)
			}
			return
		}

		u, err := svc.SetAvatar(r.Context(), claims.UserID, path)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(u, avatars))
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
