package feedings

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
	r.Route("/feedings", func(fr chi.Router) {
		fr.Get("/", listHandler(svc))
		fr.Post("/", createHandler(svc, animalsSvc))

		fr.Get("/stats", statsHandler(svc))
		fr.Get("/daily", dailyHandler(svc))
		fr.Get("/by-food-type", byFoodTypeHandler(svc))

		fr.Get("/{feedingID}", getHandler(svc))
		fr.Patch("/{feedingID}", updateHandler(svc))
		fr.Delete("/{feedingID}", deleteHandler(svc))
	})
}

type createRequest struct {
	AnimalID string  `json:"animal_id"`
	FoodType string  `json:"food_type"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Notes    string  `json:"notes"`
}

type updateRequest struct {
	FoodType *string  `json:"food_type"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Date     *string  `json:"date"`
	Notes    *string  `json:"notes"`
}

type feedingResponse struct {
	ID       string  `json:"id"`
	AnimalID string  `json:"animal_id"`
	FoodType string  `json:"food_type"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type statsResponse struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

type dailyPointResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type foodTypeTotalResponse struct {
	FoodType string  `json:"food_type"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

func createHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		day, err := dates.Parse(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		if _, err := animalsSvc.GetByID(r.Context(), req.AnimalID); err != nil {
			http.Error(w, "animal not found", http.StatusBadRequest)
			return
		}

		f, err := svc.Create(r.Context(), CreateInput{
			AnimalID: req.AnimalID,
			FoodType: req.FoodType,
			Quantity: req.Quantity,
			Unit:     Unit(req.Unit),
			Date:     day,
			Notes:    req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(f))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := ListFilter{AnimalID: q.Get("animal_id")}
		if v := strings.TrimSpace(q.Get("date_from")); v != "" {
			t, err := dates.Parse(v)
			if err != nil {
				http.Error(w, "date_from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.DateFrom = &t
		}
		if v := strings.TrimSpace(q.Get("date_to")); v != "" {
			t, err := dates.Parse(v)
			if err != nil {
				http.Error(w, "date_to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.DateTo = &t
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]feedingResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toResponse(f))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{Today: st.Today, Week: st.Week, Month: st.Month})
	}
}

func dailyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := DefaultSeriesDays
		if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		series, err := svc.DailySeries(r.Context(), days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dailyPointResponse, 0, len(series))
		for _, p := range series {
			out = append(out, dailyPointResponse{Date: dates.Format(p.Date), Total: p.Total})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func byFoodTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := svc.TotalsByFoodType(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]foodTypeTotalResponse, 0, len(totals))
		for _, t := range totals {
			out = append(out, foodTypeTotalResponse{FoodType: t.FoodType, Total: t.Total, Count: t.Count})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "feedingID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(f))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			FoodType: req.FoodType,
			Quantity: req.Quantity,
			Notes:    req.Notes,
		}
		if req.Unit != nil {
			u := Unit(*req.Unit)
			in.Unit = &u
		}
		if req.Date != nil {
			t, err := dates.Parse(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &t
		}

		f, err := svc.Update(r.Context(), chi.URLParam(r, "feedingID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(f))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "feedingID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toResponse(f Feeding) feedingResponse {
	return feedingResponse{
		ID:        f.ID,
		AnimalID:  f.AnimalID,
		FoodType:  f.FoodType,
		Quantity:  f.Quantity,
		Unit:      string(f.Unit),
		Date:      dates.Format(f.Date),
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "feeding record not found", http.StatusNotFound)
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
