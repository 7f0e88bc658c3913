package reproduction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/platform/dates"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service, speciesSvc *species.Service) {
	r.Route("/reproduction", func(rr chi.Router) {
		rr.Get("/", listHandler(svc))
		rr.Get("/heats", listByTypeHandler(svc, TypeHeat))
		rr.Get("/inseminations", listByTypeHandler(svc, TypeInsemination))

		rr.Post("/heat", createHeatHandler(svc, animalsSvc))
		rr.Post("/insemination", createInseminationHandler(svc, animalsSvc))

		rr.Get("/upcoming-heats", upcomingHeatsHandler(svc, animalsSvc, speciesSvc))
		rr.Get("/upcoming-births", upcomingBirthsHandler(svc, animalsSvc, speciesSvc))
		rr.Get("/month", monthHandler(svc))

		rr.Get("/{recordID}", getHandler(svc))
		rr.Patch("/{recordID}", updateHandler(svc))
		rr.Patch("/{recordID}/result", updateResultHandler(svc))
		rr.Delete("/{recordID}", deleteHandler(svc))
	})
}

type heatRequest struct {
	AnimalID  string `json:"animal_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Intensity string `json:"intensity"`
	Notes     string `json:"notes"`
}

type inseminationRequest struct {
	AnimalID   string `json:"animal_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Method     string `json:"method"`
	SireCode   string `json:"sire_code"`
	Result     string `json:"result"`
	Technician string `json:"technician"`
	Notes      string `json:"notes"`
}

type updateRequest struct {
	Date       *string `json:"date"`
	Intensity  *string `json:"intensity"`
	Method     *string `json:"method"`
	SireCode   *string `json:"sire_code"`
	Result     *string `json:"result"`
	Technician *string `json:"technician"`
	Notes      *string `json:"notes"`
}

type resultRequest struct {
	Result string `json:"result"`
}

type recordResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	AnimalID string `json:"animal_id"`
	Date     string `json:"date"`

	Intensity string `json:"intensity,omitempty"`

	Method     string `json:"method,omitempty"`
	SireCode   string `json:"sire_code,omitempty"`
	Result     string `json:"result,omitempty"`
	Technician string `json:"technician,omitempty"`

	Notes string `json:"notes,omitempty"`

	// Derivados, recalculados en cada lectura con el ciclo por defecto.
	// Las vistas que conocen la especie del animal usan upcoming-heats /
	// upcoming-births, que sí aplican overrides por especie.
	NextHeatDate string `json:"next_heat_date,omitempty"`
	DueDate      string `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type animalSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

type upcomingHeatResponse struct {
	RecordID      string        `json:"record_id"`
	Animal        animalSummary `json:"animal"`
	LastHeatDate  string        `json:"last_heat_date"`
	PredictedDate string        `json:"predicted_date"`
}

type upcomingBirthResponse struct {
	RecordID         string        `json:"record_id"`
	Animal           animalSummary `json:"animal"`
	InseminationDate string        `json:"insemination_date"`
	DueDate          string        `json:"due_date"`
}

type upcomingHeatsEnvelope struct {
	Items   []upcomingHeatResponse `json:"items"`
	Skipped int                    `json:"skipped"`
}

type upcomingBirthsEnvelope struct {
	Items   []upcomingBirthResponse `json:"items"`
	Skipped int                     `json:"skipped"`
}

func createHeatHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req heatRequest
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

		rec, err := svc.CreateHeat(r.Context(), HeatInput{
			AnimalID:  req.AnimalID,
			Date:      day,
			Intensity: Intensity(req.Intensity),
			Notes:     req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(rec))
	}
}

func createInseminationHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inseminationRequest
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

		rec, err := svc.CreateInsemination(r.Context(), InseminationInput{
			AnimalID:   req.AnimalID,
			Date:       day,
			Method:     Method(req.Method),
			SireCode:   req.SireCode,
			Result:     Result(req.Result),
			Technician: req.Technician,
			Notes:      req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(rec))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			Type:     Type(q.Get("type")),
			AnimalID: q.Get("animal_id"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func listByTypeHandler(svc *Service, t Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{
			Type:     t,
			AnimalID: r.URL.Query().Get("animal_id"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func upcomingHeatsHandler(svc *Service, animalsSvc *animals.Service, speciesSvc *species.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := queryInt(r, "days", DefaultHeatWindowDays)

		records, err := svc.List(r.Context(), ListFilter{Type: TypeHeat})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		lookup, cycleOf, err := buildResolvers(r.Context(), animalsSvc, speciesSvc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items, skipped := UpcomingHeats(records, lookup, cycleOf, days, time.Now())

		out := make([]upcomingHeatResponse, 0, len(items))
		for _, it := range items {
			out = append(out, upcomingHeatResponse{
				RecordID:      it.RecordID,
				Animal:        toAnimalSummary(it.Animal),
				LastHeatDate:  dates.Format(it.LastHeatDate),
				PredictedDate: dates.Format(it.PredictedDate),
			})
		}
		writeJSON(w, http.StatusOK, upcomingHeatsEnvelope{Items: out, Skipped: skipped})
	}
}

func upcomingBirthsHandler(svc *Service, animalsSvc *animals.Service, speciesSvc *species.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := queryInt(r, "days", DefaultBirthWindowDays)

		records, err := svc.List(r.Context(), ListFilter{Type: TypeInsemination})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		lookup, cycleOf, err := buildResolvers(r.Context(), animalsSvc, speciesSvc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items, skipped := UpcomingBirths(records, lookup, cycleOf, days, time.Now())

		out := make([]upcomingBirthResponse, 0, len(items))
		for _, it := range items {
			out = append(out, upcomingBirthResponse{
				RecordID:         it.RecordID,
				Animal:           toAnimalSummary(it.Animal),
				InseminationDate: dates.Format(it.InseminationDate),
				DueDate:          dates.Format(it.DueDate),
			})
		}
		writeJSON(w, http.StatusOK, upcomingBirthsEnvelope{Items: out, Skipped: skipped})
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

		records, err := svc.List(r.Context(), ListFilter{})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		inMonth := make([]Record, 0)
		for _, rec := range records {
			if dates.InRange(rec.Date, first, last) {
				inMonth = append(inMonth, rec)
			}
		}
		writeJSON(w, http.StatusOK, toResponses(inMonth))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
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
			SireCode:   req.SireCode,
			Technician: req.Technician,
			Notes:      req.Notes,
		}
		if req.Date != nil {
			t, err := dates.Parse(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &t
		}
		if req.Intensity != nil {
			v := Intensity(*req.Intensity)
			in.Intensity = &v
		}
		if req.Method != nil {
			v := Method(*req.Method)
			in.Method = &v
		}
		if req.Result != nil {
			v := Result(*req.Result)
			in.Result = &v
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func updateResultHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.UpdateResult(r.Context(), chi.URLParam(r, "recordID"), Result(req.Result))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// buildResolvers arma los lookups de animal y ciclo a partir del snapshot
// actual de animales y especies.
func buildResolvers(ctx context.Context, animalsSvc *animals.Service, speciesSvc *species.Service) (AnimalLookup, CycleResolver, error) {
	animalList, err := animalsSvc.List(ctx, animals.ListFilter{})
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]animals.Animal, len(animalList))
	for _, a := range animalList {
		byID[a.ID] = a
	}

	speciesList, err := speciesSvc.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	cycles := make(map[string]Cycle, len(speciesList))
	for _, sp := range speciesList {
		cycles[sp.ID] = CycleForSpecies(sp)
	}

	lookup := func(animalID string) (animals.Animal, bool) {
		a, ok := byID[animalID]
		return a, ok
	}
	cycleOf := func(a animals.Animal) Cycle {
		if c, ok := cycles[a.SpeciesID]; ok {
			return c
		}
		return DefaultCycle
	}
	return lookup, cycleOf, nil
}

func toAnimalSummary(a animals.Animal) animalSummary {
	return animalSummary{ID: a.ID, Identifier: a.Identifier, Name: a.Name}
}

func toResponse(rec Record) recordResponse {
	resp := recordResponse{
		ID:        rec.ID,
		Type:      string(rec.Type),
		AnimalID:  rec.AnimalID,
		Date:      dates.Format(rec.Date),
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	switch rec.Type {
	case TypeHeat:
		resp.Intensity = string(rec.Intensity)
		resp.NextHeatDate = dates.Format(NextHeatDate(rec.Date, DefaultCycle))
		// Un celo también proyecta fecha de parto tentativa: si la monta
		// ocurre en ese celo, la gestación cuenta desde su fecha.
		resp.DueDate = dates.Format(DueDate(rec.Date, DefaultCycle))
	case TypeInsemination:
		resp.Method = string(rec.Method)
		resp.SireCode = rec.SireCode
		resp.Result = string(rec.Result)
		resp.Technician = rec.Technician
		resp.DueDate = dates.Format(DueDate(rec.Date, DefaultCycle))
	}
	return resp
}

func toResponses(items []Record) []recordResponse {
	out := make([]recordResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, toResponse(rec))
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
		http.Error(w, "reproduction record not found", http.StatusNotFound)
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
