package species

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// AnimalCounter lo implementa el módulo de animales; se usa para impedir
// borrar una especie que todavía tiene animales registrados.
type AnimalCounter interface {
	CountBySpecies(ctx context.Context, speciesID string) (int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, counter AnimalCounter) {
	r.Route("/species", func(sr chi.Router) {
		sr.Get("/", listSpeciesHandler(svc))
		sr.Post("/", createSpeciesHandler(svc))

		sr.Get("/{speciesID}", getSpeciesHandler(svc))
		sr.Patch("/{speciesID}", updateSpeciesHandler(svc))
		sr.Delete("/{speciesID}", deleteSpeciesHandler(svc, counter))

		sr.Post("/{speciesID}/attributes", addAttributeHandler(svc))
		sr.Delete("/{speciesID}/attributes/{attributeID}", removeAttributeHandler(svc))
	})
}

type attributeRequest struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

type createSpeciesRequest struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Icon          string             `json:"icon"`
	Attributes    []attributeRequest `json:"attributes"`
	HeatCycleDays int                `json:"heat_cycle_days"`
	GestationDays int                `json:"gestation_days"`
}

type updateSpeciesRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Icon          *string `json:"icon"`
	HeatCycleDays *int    `json:"heat_cycle_days"`
	GestationDays *int    `json:"gestation_days"`
}

type attributeResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

type speciesResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Icon          string              `json:"icon"`
	Attributes    []attributeResponse `json:"attributes"`
	HeatCycleDays int                 `json:"heat_cycle_days,omitempty"`
	GestationDays int                 `json:"gestation_days,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func createSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSpeciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		attrs := make([]AttributeInput, 0, len(req.Attributes))
		for _, a := range req.Attributes {
			attrs = append(attrs, AttributeInput{
				Name:     a.Name,
				Type:     AttributeType(a.Type),
				Options:  a.Options,
				Required: a.Required,
			})
		}

		sp, err := svc.Create(r.Context(), CreateInput{
			Name:          req.Name,
			Description:   req.Description,
			Icon:          req.Icon,
			Attributes:    attrs,
			HeatCycleDays: req.HeatCycleDays,
			GestationDays: req.GestationDays,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSpeciesResponse(sp))
	}
}

func listSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]speciesResponse, 0, len(items))
		for _, sp := range items {
			out = append(out, toSpeciesResponse(sp))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sp, err := svc.GetByID(r.Context(), chi.URLParam(r, "speciesID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSpeciesResponse(sp))
	}
}

func updateSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSpeciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sp, err := svc.Update(r.Context(), chi.URLParam(r, "speciesID"), UpdateInput{
			Name:          req.Name,
			Description:   req.Description,
			Icon:          req.Icon,
			HeatCycleDays: req.HeatCycleDays,
			GestationDays: req.GestationDays,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSpeciesResponse(sp))
	}
}

func deleteSpeciesHandler(svc *Service, counter AnimalCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "speciesID")

		if counter != nil {
			n, err := counter.CountBySpecies(r.Context(), id)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if n > 0 {
				http.Error(w,
					fmt.Sprintf("cannot delete: %d animals belong to this species", n),
					http.StatusConflict)
				return
			}
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addAttributeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req attributeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sp, err := svc.AddAttribute(r.Context(), chi.URLParam(r, "speciesID"), AttributeInput{
			Name:     req.Name,
			Type:     AttributeType(req.Type),
			Options:  req.Options,
			Required: req.Required,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSpeciesResponse(sp))
	}
}

func removeAttributeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sp, err := svc.RemoveAttribute(r.Context(),
			chi.URLParam(r, "speciesID"), chi.URLParam(r, "attributeID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSpeciesResponse(sp))
	}
}

func toSpeciesResponse(sp Species) speciesResponse {
	attrs := make([]attributeResponse, 0, len(sp.Attributes))
	for _, a := range sp.Attributes {
		attrs = append(attrs, attributeResponse{
			ID:       a.ID,
			Name:     a.Name,
			Type:     string(a.Type),
			Options:  a.Options,
			Required: a.Required,
		})
	}
	return speciesResponse{
		ID:            sp.ID,
		Name:          sp.Name,
		Description:   sp.Description,
		Icon:          sp.Icon,
		Attributes:    attrs,
		HeatCycleDays: sp.HeatCycleDays,
		GestationDays: sp.GestationDays,
		CreatedAt:     sp.CreatedAt,
		UpdatedAt:     sp.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "species not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo para no
// crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
