package vaccinations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/platform/dates"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Get("/", listHandler(svc))
		vr.Post("/", createHandler(svc, animalsSvc))

		vr.Get("/pending", pendingHandler(svc))
		vr.Get("/overdue", overdueHandler(svc))
		vr.Get("/month", monthHandler(svc))

		vr.Get("/{vaccinationID}", getHandler(svc))
		vr.Patch("/{vaccinationID}", updateHandler(svc))
		vr.Delete("/{vaccinationID}", deleteHandler(svc))
	})
}

type createRequest struct {
	AnimalID        string `json:"animal_id"`
	VaccineName     string `json:"vaccine_name"`
	ApplicationDate string `json:"application_date"` // YYYY-MM-DD
	NextDoseDate    string `json:"next_dose_date"`   // YYYY-MM-DD opcional
	Veterinarian    string `json:"veterinarian"`
	Batch           string `json:"batch"`
	Notes           string `json:"notes"`
}

type updateRequest struct {
	VaccineName     *string `json:"vaccine_name"`
	ApplicationDate *string `json:"application_date"`
	NextDoseDate    *string `json:"next_dose_date"` // null = limpiar
	Veterinarian    *string `json:"veterinarian"`
	Batch           *string `json:"batch"`
	Notes           *string `json:"notes"`
}

type vaccinationResponse struct {
	ID              string    `json:"id"`
	AnimalID        string    `json:"animal_id"`
	VaccineName     string    `json:"vaccine_name"`
	ApplicationDate string    `json:"application_date"`
	NextDoseDate    string    `json:"next_dose_date,omitempty"`
	Veterinarian    string    `json:"veterinarian,omitempty"`
	Batch           string    `json:"batch,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func createHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		applied, err := dates.Parse(req.ApplicationDate)
		if err != nil {
			http.Error(w, "application_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var next *time.Time
		if strings.TrimSpace(req.NextDoseDate) != "" {
			t, err := dates.Parse(req.NextDoseDate)
			if err != nil {
				http.Error(w, "next_dose_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			next = &t
		}

		// El animal referenciado debe existir al crear.
		if _, err := animalsSvc.GetByID(r.Context(), req.AnimalID); err != nil {
			http.Error(w, "animal not found", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			AnimalID:        req.AnimalID,
			VaccineName:     req.VaccineName,
			ApplicationDate: applied,
			NextDoseDate:    next,
			Veterinarian:    req.Veterinarian,
			Batch:           req.Batch,
			Notes:           req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(v))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			AnimalID: q.Get("animal_id"),
			Search:   q.Get("search"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func pendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := queryInt(r, "days", DefaultPendingWindowDays)
		items, err := svc.Pending(r.Context(), days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func overdueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Overdue(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func monthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := queryInt(r, "year", 0)
		month := queryInt(r, "month", 0)
		if year < 1 || month < 1 || month > 12 {
			http.Error(w, "year and month are required", http.StatusBadRequest)
			return
		}
		items, err := svc.DueInMonth(r.Context(), year, time.Month(month))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vaccinationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updateRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			VaccineName:  req.VaccineName,
			Veterinarian: req.Veterinarian,
			Batch:        req.Batch,
			Notes:        req.Notes,
		}
		if req.ApplicationDate != nil {
			t, err := dates.Parse(*req.ApplicationDate)
			if err != nil {
				http.Error(w, "application_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.ApplicationDate = &t
		}
		if v, exists := raw["next_dose_date"]; exists {
			if string(v) == "null" {
				in.ClearNextDose = true
			} else if req.NextDoseDate != nil && strings.TrimSpace(*req.NextDoseDate) != "" {
				t, err := dates.Parse(*req.NextDoseDate)
				if err != nil {
					http.Error(w, "next_dose_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.NextDoseDate = &t
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "vaccinationID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(updated))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "vaccinationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:              v.ID,
		AnimalID:        v.AnimalID,
		VaccineName:     v.VaccineName,
		ApplicationDate: dates.Format(v.ApplicationDate),
		NextDoseDate:    dates.FormatPtr(v.NextDoseDate),
		Veterinarian:    v.Veterinarian,
		Batch:           v.Batch,
		Notes:           v.Notes,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toResponses(items []Vaccination) []vaccinationResponse {
	out := make([]vaccinationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toResponse(v))
	}
	return out
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "vaccination not found", http.StatusNotFound)
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
