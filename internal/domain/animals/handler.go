package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vetco/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Put("/{animalID}", updateAnimalHandler(svc))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc))
	})
}

// animalRequest es el cuerpo de create/update. Age, weight llegan como texto
// del formulario: "" mapea a ausente, no a cero.
type animalRequest struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	Breed             string `json:"breed"`
	Gender            string `json:"gender"`
	Age               string `json:"age"`    // meses, opcional
	Weight            string `json:"weight"` // kg, opcional
	HealthStatus      string `json:"health_status"`
	VaccinationStatus string `json:"vaccination_status"`
	Description       string `json:"description"`
}

type animalResponse struct {
	ID                string       `json:"id"`
	FarmerID          string       `json:"farmer_id"`
	Name              string       `json:"name"`
	Type              string       `json:"type"`
	Breed             string       `json:"breed"`
	Gender            string       `json:"gender"`
	Age               *int         `json:"age,omitempty"`
	Weight            *float64     `json:"weight,omitempty"`
	HealthStatus      HealthStatus `json:"health_status"`
	HealthLabel       string       `json:"health_label"`
	VaccinationStatus string       `json:"vaccination_status"`
	Description       string       `json:"description"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Registrar un animal
// @Description Crea un animal del farmer autenticado. age (meses) y weight (kg) llegan como texto; vacío significa "sin dato".
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body animalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / age o weight inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req animalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toCreateInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	// Solo los animales del caller; el orden (created_at desc) lo da el repo.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByFarmer(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		// Solo el dueño ve el detalle por esta ruta. El rol vet entra por
		// los health records, no por el perfil del animal.
		if a.FarmerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		current, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		if current.FarmerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req animalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toCreateInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), animalID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		a, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		if a.FarmerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), animalID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toCreateInput(req animalRequest) (CreateInput, error) {
	age, err := parseOptionalInt(req.Age)
	if err != nil {
		return CreateInput{}, errors.New("age must be an integer number of months")
	}
	weight, err := parseOptionalFloat(req.Weight)
	if err != nil {
		return CreateInput{}, errors.New("weight must be a number of kg")
	}

	return CreateInput{
		Name:              req.Name,
		Type:              req.Type,
		Breed:             req.Breed,
		Gender:            req.Gender,
		Age:               age,
		Weight:            weight,
		HealthStatus:      req.HealthStatus,
		VaccinationStatus: req.VaccinationStatus,
		Description:       req.Description,
	}, nil
}

// "" => nil (ausente, no cero).
func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
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

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:                a.ID,
		FarmerID:          a.FarmerID,
		Name:              a.Name,
		Type:              a.Type,
		Breed:             a.Breed,
		Gender:            a.Gender,
		Age:               a.Age,
		Weight:            a.Weight,
		HealthStatus:      a.HealthStatus,
		HealthLabel:       a.HealthStatus.Label(),
		VaccinationStatus: a.VaccinationStatus,
		Description:       a.Description,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
