// Package schedule arma la vista de calendario mensual combinando los
// eventos de los demás módulos. El paquete no guarda el mes seleccionado:
// el cliente lo mantiene y navega con PrevMonth / NextMonth.
package schedule

import (
	"sort"
	"time"

	"livestock-registry/internal/platform/dates"
)

// Category clasifica un evento dentro del calendario.
type Category string

const (
	CategoryVaccinationDue Category = "vaccination_due"
	CategoryHeat           Category = "heat"
	CategoryInsemination   Category = "insemination"
	CategoryPredictedHeat  Category = "predicted_heat"
)

// Event es una entrada puntual del calendario, ya normalizada a día.
type Event struct {
	Date     time.Time
	Category Category
	AnimalID string
	Label    string
}

// Cell es una casilla de la grilla. Day 0 marca un espacio en blanco
// anterior al día 1 del mes.
type Cell struct {
	Day    int
	Events []Event
}

// Grid es la grilla mensual con la semana empezando en domingo.
type Grid struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// MonthGrid distribuye los eventos en las casillas del mes pedido. Los
// eventos fuera del mes se descartan. Dentro de cada casilla los eventos
// quedan ordenados por categoría y luego por etiqueta.
func MonthGrid(year int, month time.Month, events []Event) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	byDay := make(map[int][]Event)
	for _, ev := range events {
		d := dates.Day(ev.Date)
		if d.Year() != year || d.Month() != month {
			continue
		}
		byDay[d.Day()] = append(byDay[d.Day()], ev)
	}

	cells := make([]Cell, 0, lead+daysInMonth)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		evs := byDay[day]
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].Category != evs[j].Category {
				return evs[i].Category < evs[j].Category
			}
			return evs[i].Label < evs[j].Label
		})
		cells = append(cells, Cell{Day: day, Events: evs})
	}

	return Grid{Year: year, Month: month, Cells: cells}
}

// PrevMonth y NextMonth son la navegación del calendario. Son puras: el
// mes mostrado vive en el cliente, no en el servidor.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}
