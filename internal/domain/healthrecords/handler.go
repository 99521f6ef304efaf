package healthrecords

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vetco/internal/domain/users"
	"vetco/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// AnimalOwnerLookup expone el farmerID dueño de un animal sin importar el
// paquete animals (rompe ciclos, como el PetOwnerLookup del módulo de grants).
type AnimalOwnerLookup interface {
	OwnerOf(ctx context.Context, animalID string) (string, error)
}

// RoleLookup resuelve el rol almacenado de una identidad.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (users.Role, error)
}

func RegisterRoutes(r chi.Router, svc *Service, owners AnimalOwnerLookup, roles RoleLookup) {
	r.Route("/animals/{animalID}/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc, owners))
		rr.Get("/", listRecordsHandler(svc, owners, roles))
		rr.Put("/{recordID}", updateRecordHandler(svc, owners))
		rr.Delete("/{recordID}", deleteRecordHandler(svc, owners))
	})

	// Vista transversal para el dashboard del rol vet.
	r.Get("/records/recent", recentRecordsHandler(svc, roles))
}

// recordRequest es el cuerpo de create/update. Cost llega como texto del
// formulario: "" mapea a ausente.
type recordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Treatment   string `json:"treatment"`
	VetName     string `json:"vet_name"`
	Cost        string `json:"cost"`
}

type recordResponse struct {
	ID          string    `json:"id"`
	AnimalID    string    `json:"animal_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Treatment   string    `json:"treatment"`
	VetName     string    `json:"vet_name"`
	Cost        *float64  `json:"cost,omitempty"`
	RecordDate  time.Time `json:"record_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// createRecordHandler godoc
// @Summary Registrar un health record
// @Description Crea una entrada del historial sanitario del animal. Solo el farmer dueño puede crear. cost llega como texto; vacío significa "sin dato".
// @Tags records
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body recordRequest true "Datos del record"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / cost inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/records [post]
func createRecordHandler(svc *Service, owners AnimalOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		if !requireOwner(w, r, owners, animalID, claims.UserID) {
			return
		}

		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		cost, err := parseOptionalFloat(req.Cost)
		if err != nil {
			http.Error(w, "cost must be a number", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), animalID, CreateInput{
			Title:       req.Title,
			Description: req.Description,
			Treatment:   req.Treatment,
			VetName:     req.VetName,
			Cost:        cost,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler: el dueño siempre puede ver; un caller con rol vet
// puede leer el historial de cualquier animal (política de visibilidad
// del rol veterinario). Nadie más.
func listRecordsHandler(svc *Service, owners AnimalOwnerLookup, roles RoleLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		ownerID, err := owners.OwnerOf(r.Context(), animalID)
		if err != nil || strings.TrimSpace(ownerID) == "" {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if ownerID != claims.UserID {
			role, err := roles.RoleOf(r.Context(), claims.UserID)
			if err != nil || role != users.RoleVet {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		items, err := svc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recentRecordsHandler lista los últimos records de todos los animales.
// Solo rol vet; limit opcional vía query (?limit=N, tope 100).
func recentRecordsHandler(svc *Service, roles RoleLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := roles.RoleOf(r.Context(), claims.UserID)
		if err != nil || role != users.RoleVet {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			if n > 100 {
				n = 100
			}
			limit = n
		}

		items, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateRecordHandler(svc *Service, owners AnimalOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		recordID := chi.URLParam(r, "recordID")

		if !requireOwner(w, r, owners, animalID, claims.UserID) {
			return
		}

		// El record existe y pertenece al animal de la URL.
		rec, err := svc.GetByID(r.Context(), recordID)
		if err != nil || rec.AnimalID != animalID {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		cost, err := parseOptionalFloat(req.Cost)
		if err != nil {
			http.Error(w, "cost must be a number", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), recordID, CreateInput{
			Title:       req.Title,
			Description: req.Description,
			Treatment:   req.Treatment,
			VetName:     req.VetName,
			Cost:        cost,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "record not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(updated))
	}
}

func deleteRecordHandler(svc *Service, owners AnimalOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		recordID := chi.URLParam(r, "recordID")

		if !requireOwner(w, r, owners, animalID, claims.UserID) {
			return
		}

		rec, err := svc.GetByID(r.Context(), recordID)
		if err != nil || rec.AnimalID != animalID {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), recordID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// requireOwner corta con 404/403 si el animal no existe o el caller no es
// el dueño. Mutaciones son owner-only; el rol vet solo lee.
func requireOwner(w http.ResponseWriter, r *http.Request, owners AnimalOwnerLookup, animalID, userID string) bool {
	ownerID, err := owners.OwnerOf(r.Context(), animalID)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		http.Error(w, "animal not found", http.StatusNotFound)
		return false
	}
	if ownerID != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func toRecordResponse(rec HealthRecord) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		AnimalID:    rec.AnimalID,
		Title:       rec.Title,
		Description: rec.Description,
		Treatment:   rec.Treatment,
		VetName:     rec.VetName,
		Cost:        rec.Cost,
		RecordDate:  rec.RecordDate,
		CreatedAt:   rec.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
