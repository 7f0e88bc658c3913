package reproduction

import (
	"sort"
	"time"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/platform/dates"
)

// Parámetros reproductivos por defecto (biología bovina). Una especie puede
// declarar los suyos; ver CycleForSpecies.
const (
	DefaultHeatCycleDays = 21
	DefaultGestationDays = 114

	DefaultHeatWindowDays  = 14
	DefaultBirthWindowDays = 30
)

// Cycle agrupa los offsets de predicción. El valor cero equivale a
// DefaultCycle.
type Cycle struct {
	HeatDays      int
	GestationDays int
}

var DefaultCycle = Cycle{HeatDays: DefaultHeatCycleDays, GestationDays: DefaultGestationDays}

func (c Cycle) withDefaults() Cycle {
	if c.HeatDays <= 0 {
		c.HeatDays = DefaultHeatCycleDays
	}
	if c.GestationDays <= 0 {
		c.GestationDays = DefaultGestationDays
	}
	return c
}

// CycleForSpecies arma el ciclo de una especie, cayendo a los defaults
// bovinos donde la especie no declara override.
func CycleForSpecies(sp species.Species) Cycle {
	return Cycle{HeatDays: sp.HeatCycleDays, GestationDays: sp.GestationDays}.withDefaults()
}

// NextHeatDate predice el próximo celo: fecha base + días de ciclo. Suma
// calendario-correcta (meses, años bisiestos) sobre la fecha normalizada a
// día.
func NextHeatDate(base time.Time, c Cycle) time.Time {
	return dates.AddDays(base, c.withDefaults().HeatDays)
}

// DueDate estima la fecha de parto: fecha base + días de gestación.
func DueDate(base time.Time, c Cycle) time.Time {
	return dates.AddDays(base, c.withDefaults().GestationDays)
}

// AnimalLookup resuelve el animal dueño de un registro. ok=false significa
// referencia colgante: el registro se salta sin error (un animal borrado no
// debe tumbar el tablero completo).
type AnimalLookup func(animalID string) (animals.Animal, bool)

// CycleResolver entrega el ciclo aplicable a un animal (normalmente vía su
// especie). nil = DefaultCycle para todos.
type CycleResolver func(a animals.Animal) Cycle

// UpcomingHeat es un celo predicho dentro de la ventana consultada.
type UpcomingHeat struct {
	RecordID      string
	Animal        animals.Animal
	LastHeatDate  time.Time
	PredictedDate time.Time
}

// UpcomingHeats filtra los celos cuyo próximo celo predicho cae en
// [hoy, hoy+windowDays], ambos extremos inclusive, ordenados por fecha
// predicha ascendente (empates por ID de registro). Retorna además cuántos
// registros se saltaron por referencia de animal no resoluble o fecha
// inválida.
func UpcomingHeats(records []Record, lookup AnimalLookup, cycleOf CycleResolver, windowDays int, now time.Time) ([]UpcomingHeat, int) {
	if windowDays <= 0 {
		windowDays = DefaultHeatWindowDays
	}
	today := dates.Day(now)
	limit := dates.AddDays(today, windowDays)

	out := make([]UpcomingHeat, 0)
	skipped := 0
	for _, rec := range records {
		if rec.Type != TypeHeat {
			continue
		}
		if rec.Date.IsZero() {
			skipped++
			continue
		}
		a, ok := resolve(lookup, rec.AnimalID)
		if !ok {
			skipped++
			continue
		}
		predicted := NextHeatDate(rec.Date, resolveCycle(cycleOf, a))
		if !dates.InRange(predicted, today, limit) {
			continue
		}
		out = append(out, UpcomingHeat{
			RecordID:      rec.ID,
			Animal:        a,
			LastHeatDate:  dates.Day(rec.Date),
			PredictedDate: predicted,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PredictedDate.Equal(out[j].PredictedDate) {
			return out[i].PredictedDate.Before(out[j].PredictedDate)
		}
		return out[i].RecordID < out[j].RecordID
	})
	return out, skipped
}

// UpcomingBirth es un parto estimado dentro de la ventana consultada.
type UpcomingBirth struct {
	RecordID         string
	Animal           animals.Animal
	InseminationDate time.Time
	DueDate          time.Time
}

// UpcomingBirths filtra las inseminaciones exitosas cuyo parto estimado cae
// en [hoy, hoy+windowDays], con la misma semántica de ventana, orden y
// conteo de saltados que UpcomingHeats.
func UpcomingBirths(records []Record, lookup AnimalLookup, cycleOf CycleResolver, windowDays int, now time.Time) ([]UpcomingBirth, int) {
	if windowDays <= 0 {
		windowDays = DefaultBirthWindowDays
	}
	today := dates.Day(now)
	limit := dates.AddDays(today, windowDays)

	out := make([]UpcomingBirth, 0)
	skipped := 0
	for _, rec := range records {
		if rec.Type != TypeInsemination || rec.Result != ResultSuccess {
			continue
		}
		if rec.Date.IsZero() {
			skipped++
			continue
		}
		a, ok := resolve(lookup, rec.AnimalID)
		if !ok {
			skipped++
			continue
		}
		due := DueDate(rec.Date, resolveCycle(cycleOf, a))
		if !dates.InRange(due, today, limit) {
			continue
		}
		out = append(out, UpcomingBirth{
			RecordID:         rec.ID,
			Animal:           a,
			InseminationDate: dates.Day(rec.Date),
			DueDate:          due,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].RecordID < out[j].RecordID
	})
	return out, skipped
}

func resolve(lookup AnimalLookup, animalID string) (animals.Animal, bool) {
	if lookup == nil {
		return animals.Animal{}, false
	}
	return lookup(animalID)
}

func resolveCycle(cycleOf CycleResolver, a animals.Animal) Cycle {
	if cycleOf == nil {
		return DefaultCycle
	}
	return cycleOf(a).withDefaults()
}
