package feedings

import (
	"sort"
	"time"

	"livestock-registry/internal/platform/dates"
)

// DefaultSeriesDays es el largo por defecto de la serie diaria de consumo.
const DefaultSeriesDays = 14

// Stats son las sumas de cantidad en tres ventanas: el día de hoy, los
// últimos 7 días (ventana rodante, date >= hoy-7) y el mes calendario en
// curso. Todas terminan en hoy inclusive.
type Stats struct {
	Today float64
	Week  float64
	Month float64
}

func ConsumptionStats(records []Feeding, now time.Time) Stats {
	today := dates.Day(now)
	weekStart := dates.AddDays(today, -7)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var st Stats
	for _, f := range records {
		d := dates.Day(f.Date)
		if d.After(today) {
			continue
		}
		if d.Equal(today) {
			st.Today += f.Quantity
		}
		if !d.Before(weekStart) {
			st.Week += f.Quantity
		}
		if !d.Before(monthStart) {
			st.Month += f.Quantity
		}
	}
	return st
}

// DailyPoint es un punto de la serie diaria.
type DailyPoint struct {
	Date  time.Time
	Total float64
}

// DailySeries produce exactamente days puntos, uno por día calendario desde
// hoy-(days-1) hasta hoy, en orden ascendente. Días sin registros valen 0:
// la serie es densa siempre, las gráficas dependen de eso.
func DailySeries(records []Feeding, days int, now time.Time) []DailyPoint {
	if days <= 0 {
		days = DefaultSeriesDays
	}
	today := dates.Day(now)
	start := dates.AddDays(today, -(days - 1))

	totals := make(map[time.Time]float64, days)
	for _, f := range records {
		d := dates.Day(f.Date)
		if d.Before(start) || d.After(today) {
			continue
		}
		totals[d] += f.Quantity
	}

	out := make([]DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		d := dates.AddDays(start, i)
		out = append(out, DailyPoint{Date: d, Total: totals[d]})
	}
	return out
}

// FoodTypeTotal agrupa consumo por tipo de alimento.
type FoodTypeTotal struct {
	FoodType string
	Total    float64
	Count    int
}

// TotalsByFoodType agrupa por foodType y ordena por total descendente
// (empates por nombre, para salida estable).
func TotalsByFoodType(records []Feeding) []FoodTypeTotal {
	grouped := map[string]*FoodTypeTotal{}
	for _, f := range records {
		g, ok := grouped[f.FoodType]
		if !ok {
			g = &FoodTypeTotal{FoodType: f.FoodType}
			grouped[f.FoodType] = g
		}
		g.Total += f.Quantity
		g.Count++
	}

	out := make([]FoodTypeTotal, 0, len(grouped))
	for _, g := range grouped {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].FoodType < out[j].FoodType
	})
	return out
}
