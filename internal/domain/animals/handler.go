package animals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/platform/dates"
)

// RecordModule lo implementan los módulos que guardan registros por animal
// (vacunaciones, alimentación, reproducción). El perfil del animal muestra
// sus registros recientes y el borrado los elimina en cascada.
type RecordModule interface {
	Kind() string
	RecentByAnimal(ctx context.Context, animalID string, limit int) ([]RecordSummary, error)
	DeleteByAnimal(ctx context.Context, animalID string) (int, error)
}

// RecordSummary es la vista mínima de un registro dependiente para el perfil.
type RecordSummary struct {
	ID    string
	Date  time.Time
	Label string
}

const recentLimit = 10

func RegisterRoutes(r chi.Router, svc *Service, speciesSvc *species.Service, modules ...RecordModule) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Post("/", createAnimalHandler(svc, speciesSvc))

		ar.Get("/stats", statsHandler(svc))
		ar.Get("/females", femalesHandler(svc))

		ar.Get("/{animalID}", getAnimalHandler(svc, modules))
		ar.Patch("/{animalID}", updateAnimalHandler(svc, speciesSvc))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc, modules))
	})
}

type createAnimalRequest struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	SpeciesID  string `json:"species_id"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD opcional
	Sex        string `json:"sex"`
	Status     string `json:"status"`
	Image      string `json:"image"`
	Notes      string `json:"notes"`

	CustomAttributes map[string]species.AttributeValue `json:"custom_attributes"`
}

type updateAnimalRequest struct {
	Identifier *string `json:"identifier"`
	Name       *string `json:"name"`
	SpeciesID  *string `json:"species_id"`
	BirthDate  *string `json:"birth_date"` // YYYY-MM-DD; null = limpiar
	Sex        *string `json:"sex"`
	Status     *string `json:"status"`
	Image      *string `json:"image"`
	Notes      *string `json:"notes"`

	CustomAttributes map[string]species.AttributeValue `json:"custom_attributes"`
}

type animalResponse struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	SpeciesID  string `json:"species_id"`
	BirthDate  string `json:"birth_date,omitempty"`
	Sex        string `json:"sex,omitempty"`
	Status     string `json:"status"`
	Image      string `json:"image,omitempty"`
	Notes      string `json:"notes,omitempty"`

	CustomAttributes map[string]species.AttributeValue `json:"custom_attributes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type recordSummaryResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Label string `json:"label"`
}

type animalProfileResponse struct {
	Animal  animalResponse                     `json:"animal"`
	Records map[string][]recordSummaryResponse `json:"records"`
}

type statsResponse struct {
	Total           int            `json:"total"`
	Active          int            `json:"active"`
	Sold            int            `json:"sold"`
	Deceased        int            `json:"deceased"`
	ActiveBySpecies map[string]int `json:"active_by_species"`
}

func createAnimalHandler(svc *Service, speciesSvc *species.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := dates.Parse(req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		// La especie debe existir y el animal cumplir su esquema de atributos.
		sp, err := speciesSvc.GetByID(r.Context(), req.SpeciesID)
		if err != nil {
			http.Error(w, "species not found", http.StatusBadRequest)
			return
		}
		if err := species.ValidateAttributes(sp.Attributes, req.CustomAttributes); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Identifier:       req.Identifier,
			Name:             req.Name,
			SpeciesID:        req.SpeciesID,
			BirthDate:        bd,
			Sex:              Sex(req.Sex),
			Status:           Status(req.Status),
			Image:            req.Image,
			Notes:            req.Notes,
			CustomAttributes: req.CustomAttributes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			SpeciesID: q.Get("species_id"),
			Status:    Status(q.Get("status")),
			Sex:       Sex(q.Get("sex")),
			Search:    q.Get("search"),
		})
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

func getAnimalHandler(svc *Service, modules []RecordModule) http.HandlerFunc {
	// Perfil completo: animal + registros recientes de cada módulo.
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}

		records := make(map[string][]recordSummaryResponse, len(modules))
		for _, m := range modules {
			items, err := m.RecentByAnimal(r.Context(), a.ID, recentLimit)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			summaries := make([]recordSummaryResponse, 0, len(items))
			for _, it := range items {
				summaries = append(summaries, recordSummaryResponse{
					ID:    it.ID,
					Date:  dates.Format(it.Date),
					Label: it.Label,
				})
			}
			records[m.Kind()] = summaries
		}

		writeJSON(w, http.StatusOK, animalProfileResponse{
			Animal:  toAnimalResponse(a),
			Records: records,
		})
	}
}

func updateAnimalHandler(svc *Service, speciesSvc *species.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Decode a map primero para distinguir "birth_date": null de "no enviado".
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateAnimalRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			Identifier:       req.Identifier,
			Name:             req.Name,
			SpeciesID:        req.SpeciesID,
			Image:            req.Image,
			Notes:            req.Notes,
			CustomAttributes: req.CustomAttributes,
		}
		if req.Sex != nil {
			sex := Sex(*req.Sex)
			in.Sex = &sex
		}
		if req.Status != nil {
			status := Status(*req.Status)
			in.Status = &status
		}
		if v, exists := raw["birth_date"]; exists {
			if string(v) == "null" {
				in.ClearBirth = true
			} else if req.BirthDate != nil && strings.TrimSpace(*req.BirthDate) != "" {
				t, err := dates.Parse(*req.BirthDate)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.BirthDate = &t
			}
		}

		animalID := chi.URLParam(r, "animalID")

		// Si cambian especie o atributos, revalidar contra el esquema vigente.
		if req.SpeciesID != nil || req.CustomAttributes != nil {
			current, err := svc.GetByID(r.Context(), animalID)
			if err != nil {
				writeError(w, err)
				return
			}
			speciesID := current.SpeciesID
			if req.SpeciesID != nil {
				speciesID = *req.SpeciesID
			}
			attrs := current.CustomAttributes
			if req.CustomAttributes != nil {
				attrs = req.CustomAttributes
			}
			sp, err := speciesSvc.GetByID(r.Context(), speciesID)
			if err != nil {
				http.Error(w, "species not found", http.StatusBadRequest)
				return
			}
			if err := species.ValidateAttributes(sp.Attributes, attrs); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		a, err := svc.Update(r.Context(), animalID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func deleteAnimalHandler(svc *Service, modules []RecordModule) http.HandlerFunc {
	// Borra el animal y sus registros dependientes (cascada a nivel handler,
	// igual que el resto de la orquestación entre módulos).
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")

		if _, err := svc.GetByID(r.Context(), animalID); err != nil {
			writeError(w, err)
			return
		}

		for _, m := range modules {
			if _, err := m.DeleteByAnimal(r.Context(), animalID); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		if err := svc.Delete(r.Context(), animalID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{
			Total:           st.Total,
			Active:          st.Active,
			Sold:            st.Sold,
			Deceased:        st.Deceased,
			ActiveBySpecies: st.ActiveBySpecies,
		})
	}
}

func femalesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Females(r.Context())
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

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:               a.ID,
		Identifier:       a.Identifier,
		Name:             a.Name,
		SpeciesID:        a.SpeciesID,
		BirthDate:        dates.FormatPtr(a.BirthDate),
		Sex:              string(a.Sex),
		Status:           string(a.Status),
		Image:            a.Image,
		Notes:            a.Notes,
		CustomAttributes: a.CustomAttributes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
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
