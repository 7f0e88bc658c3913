package schedule

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGrid_LeadingBlanksSundayFirst(t *testing.T) {
	// Enero 2024 empieza lunes: una casilla en blanco.
	g := MonthGrid(2024, time.January, nil)

	if g.Year != 2024 || g.Month != time.January {
		t.Fatalf("grid header: %d-%v", g.Year, g.Month)
	}
	if len(g.Cells) != 1+31 {
		t.Fatalf("expected 32 cells, got %d", len(g.Cells))
	}
	if g.Cells[0].Day != 0 {
		t.Fatalf("first cell should be blank, got day %d", g.Cells[0].Day)
	}
	if g.Cells[1].Day != 1 || g.Cells[31].Day != 31 {
		t.Fatalf("days misplaced: cell1=%d cell31=%d", g.Cells[1].Day, g.Cells[31].Day)
	}
}

func TestMonthGrid_NoBlanksWhenMonthStartsSunday(t *testing.T) {
	// Septiembre 2024 empieza domingo.
	g := MonthGrid(2024, time.September, nil)
	if len(g.Cells) != 30 {
		t.Fatalf("expected 30 cells, got %d", len(g.Cells))
	}
	if g.Cells[0].Day != 1 {
		t.Fatalf("first cell should be day 1, got %d", g.Cells[0].Day)
	}
}

func TestMonthGrid_BucketsEventsByDay(t *testing.T) {
	events := []Event{
		{Date: day(2024, time.January, 1), Category: CategoryHeat, AnimalID: "a1", Label: "Lola: celo"},
		{Date: day(2024, time.January, 1), Category: CategoryVaccinationDue, AnimalID: "a2", Label: "Mora: aftosa"},
		{Date: day(2024, time.January, 15), Category: CategoryPredictedHeat, AnimalID: "a1", Label: "Lola: celo estimado"},
		// fuera del mes: se descarta
		{Date: day(2024, time.February, 1), Category: CategoryHeat, AnimalID: "a1", Label: "x"},
		// la hora del día no cambia la casilla
		{Date: time.Date(2024, time.January, 15, 18, 30, 0, 0, time.UTC), Category: CategoryInsemination, AnimalID: "a2", Label: "Mora: inseminación"},
	}

	g := MonthGrid(2024, time.January, events)

	// lead de enero 2024 es 1
	day1 := g.Cells[1]
	if day1.Day != 1 || len(day1.Events) != 2 {
		t.Fatalf("day 1: %+v", day1)
	}
	// orden por categoría dentro de la casilla
	if day1.Events[0].Category != CategoryHeat || day1.Events[1].Category != CategoryVaccinationDue {
		t.Fatalf("day 1 event order: %+v", day1.Events)
	}

	day15 := g.Cells[15]
	if day15.Day != 15 || len(day15.Events) != 2 {
		t.Fatalf("day 15: %+v", day15)
	}

	total := 0
	for _, c := range g.Cells {
		total += len(c.Events)
	}
	if total != 4 {
		t.Fatalf("expected 4 events in grid, got %d", total)
	}
}

func TestPrevNextMonth_CrossYear(t *testing.T) {
	y, m := PrevMonth(2024, time.January)
	if y != 2023 || m != time.December {
		t.Fatalf("prev of 2024-01: %d-%v", y, m)
	}

	y, m = NextMonth(2023, time.December)
	if y != 2024 || m != time.January {
		t.Fatalf("next of 2023-12: %d-%v", y, m)
	}

	y, m = NextMonth(2024, time.June)
	if y != 2024 || m != time.July {
		t.Fatalf("next of 2024-06: %d-%v", y, m)
	}
}
