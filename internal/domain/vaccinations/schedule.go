package vaccinations

import (
	"sort"
	"time"

	"livestock-registry/internal/platform/dates"
)

// DefaultPendingWindowDays es la ventana canónica para "pendiente". Las dos
// variantes históricas de la app usaban 7 y 14 según el call site; aquí se
// unifica en 7 y los callers que quieran otra ventana la pasan explícita.
const DefaultPendingWindowDays = 7

// Pending retorna las vacunaciones cuya próxima dosis cae dentro de
// [hoy, hoy+windowDays], ambos extremos inclusive, ordenadas por fecha de
// próxima dosis ascendente. Registros sin NextDoseDate no participan.
func Pending(records []Vaccination, windowDays int, now time.Time) []Vaccination {
	if windowDays <= 0 {
		windowDays = DefaultPendingWindowDays
	}
	today := dates.Day(now)
	limit := dates.AddDays(today, windowDays)

	out := make([]Vaccination, 0)
	for _, v := range records {
		if v.NextDoseDate == nil {
			continue
		}
		if dates.InRange(*v.NextDoseDate, today, limit) {
			out = append(out, v)
		}
	}
	sortByNextDose(out)
	return out
}

// Overdue retorna las vacunaciones cuya próxima dosis es estrictamente
// anterior a hoy. Una dosis que vence hoy todavía es "pendiente", no vencida:
// Pending y Overdue particionan los registros con NextDoseDate.
func Overdue(records []Vaccination, now time.Time) []Vaccination {
	today := dates.Day(now)

	out := make([]Vaccination, 0)
	for _, v := range records {
		if v.NextDoseDate == nil {
			continue
		}
		if dates.Day(*v.NextDoseDate).Before(today) {
			out = append(out, v)
		}
	}
	sortByNextDose(out)
	return out
}

// DueInMonth retorna las vacunaciones con próxima dosis dentro del mes dado
// (vista calendario).
func DueInMonth(records []Vaccination, year int, month time.Month) []Vaccination {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	out := make([]Vaccination, 0)
	for _, v := range records {
		if v.NextDoseDate == nil {
			continue
		}
		if dates.InRange(*v.NextDoseDate, first, last) {
			out = append(out, v)
		}
	}
	sortByNextDose(out)
	return out
}

func sortByNextDose(items []Vaccination) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := dates.Day(*items[i].NextDoseDate), dates.Day(*items[j].NextDoseDate)
		if !a.Equal(b) {
			return a.Before(b)
		}
		return items[i].ID < items[j].ID
	})
}
