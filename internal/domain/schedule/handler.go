package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/reproduction"
	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/domain/vaccinations"
	"livestock-registry/internal/platform/dates"
)

func RegisterRoutes(r chi.Router, animalsSvc *animals.Service, speciesSvc *species.Service, vaccSvc *vaccinations.Service, reproSvc *reproduction.Service) {
	r.Get("/calendar", calendarHandler(animalsSvc, speciesSvc, vaccSvc, reproSvc))
}

type eventResponse struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	AnimalID string `json:"animal_id"`
	Label    string `json:"label"`
}

type cellResponse struct {
	Day    int             `json:"day"`
	Events []eventResponse `json:"events"`
}

type gridResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Cells []cellResponse `json:"cells"`
}

func calendarHandler(animalsSvc *animals.Service, speciesSvc *species.Service, vaccSvc *vaccinations.Service, reproSvc *reproduction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := queryInt(r, "year", 0)
		month := queryInt(r, "month", 0)
		if year < 1 || month < 1 || month > 12 {
			http.Error(w, "year and month are required", http.StatusBadRequest)
			return
		}

		events, err := collectEvents(r.Context(), year, time.Month(month), animalsSvc, speciesSvc, vaccSvc, reproSvc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		grid := MonthGrid(year, time.Month(month), events)
		writeJSON(w, http.StatusOK, toGridResponse(grid))
	}
}

// collectEvents junta vacunas con refuerzo en el mes, eventos reproductivos
// registrados y celos estimados cuya fecha proyectada cae dentro del mes.
func collectEvents(ctx context.Context, year int, month time.Month, animalsSvc *animals.Service, speciesSvc *species.Service, vaccSvc *vaccinations.Service, reproSvc *reproduction.Service) ([]Event, error) {
	animalList, err := animalsSvc.List(ctx, animals.ListFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(animalList))
	byID := make(map[string]animals.Animal, len(animalList))
	for _, a := range animalList {
		names[a.ID] = a.Name
		byID[a.ID] = a
	}

	speciesList, err := speciesSvc.List(ctx)
	if err != nil {
		return nil, err
	}
	cycles := make(map[string]reproduction.Cycle, len(speciesList))
	for _, sp := range speciesList {
		cycles[sp.ID] = reproduction.CycleForSpecies(sp)
	}
	cycleOf := func(a animals.Animal) reproduction.Cycle {
		if c, ok := cycles[a.SpeciesID]; ok {
			return c
		}
		return reproduction.DefaultCycle
	}

	events := make([]Event, 0)

	due, err := vaccSvc.DueInMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	for _, v := range due {
		if v.NextDoseDate == nil {
			continue
		}
		events = append(events, Event{
			Date:     *v.NextDoseDate,
			Category: CategoryVaccinationDue,
			AnimalID: v.AnimalID,
			Label:    fmt.Sprintf("%s: %s", names[v.AnimalID], v.VaccineName),
		})
	}

	records, err := reproSvc.List(ctx, reproduction.ListFilter{})
	if err != nil {
		return nil, err
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	for _, rec := range records {
		switch rec.Type {
		case reproduction.TypeHeat:
			if dates.InRange(rec.Date, first, last) {
				events = append(events, Event{
					Date:     rec.Date,
					Category: CategoryHeat,
					AnimalID: rec.AnimalID,
					Label:    fmt.Sprintf("%s: celo", names[rec.AnimalID]),
				})
			}
			// Celo proyectado a partir del último registrado.
			a, ok := byID[rec.AnimalID]
			if !ok {
				continue
			}
			predicted := reproduction.NextHeatDate(rec.Date, cycleOf(a))
			if dates.InRange(predicted, first, last) {
				events = append(events, Event{
					Date:     predicted,
					Category: CategoryPredictedHeat,
					AnimalID: rec.AnimalID,
					Label:    fmt.Sprintf("%s: celo estimado", names[rec.AnimalID]),
				})
			}
		case reproduction.TypeInsemination:
			if dates.InRange(rec.Date, first, last) {
				events = append(events, Event{
					Date:     rec.Date,
					Category: CategoryInsemination,
					AnimalID: rec.AnimalID,
					Label:    fmt.Sprintf("%s: inseminación", names[rec.AnimalID]),
				})
			}
		}
	}

	return events, nil
}

func toGridResponse(g Grid) gridResponse {
	cells := make([]cellResponse, 0, len(g.Cells))
	for _, c := range g.Cells {
		evs := make([]eventResponse, 0, len(c.Events))
		for _, ev := range c.Events {
			evs = append(evs, eventResponse{
				Date:     dates.Format(ev.Date),
				Category: string(ev.Category),
				AnimalID: ev.AnimalID,
				Label:    ev.Label,
			})
		}
		cells = append(cells, cellResponse{Day: c.Day, Events: evs})
	}
	return gridResponse{Year: g.Year, Month: int(g.Month), Cells: cells}
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

// writeJSON está duplicado a propósito en los handlers de cada módulo para no
// crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
