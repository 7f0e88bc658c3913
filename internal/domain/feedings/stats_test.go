package feedings

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestConsumptionStats_Windows(t *testing.T) {
	now := day(2024, time.June, 3)

	records := []Feeding{
		{ID: "f1", Date: day(2024, time.June, 1), Quantity: 5},
		{ID: "f2", Date: day(2024, time.June, 1), Quantity: 3},
		{ID: "f3", Date: day(2024, time.June, 3), Quantity: 2},
		// mayo: cuenta para la semana móvil pero no para el mes
		{ID: "f4", Date: day(2024, time.May, 30), Quantity: 4},
		// fuera de la semana móvil, fuera del mes
		{ID: "f5", Date: day(2024, time.May, 20), Quantity: 10},
		// futuro: nunca cuenta
		{ID: "f6", Date: day(2024, time.June, 4), Quantity: 7},
	}

	st := ConsumptionStats(records, now)

	if st.Today != 2 {
		t.Fatalf("today: got %v want 2", st.Today)
	}
	if st.Week != 14 {
		t.Fatalf("week: got %v want 14", st.Week)
	}
	if st.Month != 10 {
		t.Fatalf("month: got %v want 10", st.Month)
	}
}

func TestConsumptionStats_MonthStartsAtCalendarMonth(t *testing.T) {
	// Primero de mes: la semana móvil cruza hacia atrás, el mes no.
	now := day(2024, time.June, 1)

	records := []Feeding{
		{ID: "f1", Date: day(2024, time.May, 31), Quantity: 5},
		{ID: "f2", Date: day(2024, time.June, 1), Quantity: 2},
	}

	st := ConsumptionStats(records, now)
	if st.Month != 2 {
		t.Fatalf("month on day 1: got %v want 2", st.Month)
	}
	if st.Week != 7 {
		t.Fatalf("week on day 1: got %v want 7", st.Week)
	}
}

func TestDailySeries_DenseAndOrdered(t *testing.T) {
	now := day(2024, time.June, 3)

	records := []Feeding{
		{ID: "f1", Date: day(2024, time.June, 1), Quantity: 5},
		{ID: "f2", Date: day(2024, time.June, 1), Quantity: 3},
		{ID: "f3", Date: day(2024, time.June, 3), Quantity: 2},
		// fuera de rango por abajo
		{ID: "f4", Date: day(2024, time.May, 31), Quantity: 9},
	}

	series := DailySeries(records, 3, now)

	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	wantDates := []time.Time{
		day(2024, time.June, 1),
		day(2024, time.June, 2),
		day(2024, time.June, 3),
	}
	wantTotals := []float64{8, 0, 2}
	for i := range series {
		if !series[i].Date.Equal(wantDates[i]) {
			t.Fatalf("point %d date: got %v want %v", i, series[i].Date, wantDates[i])
		}
		if series[i].Total != wantTotals[i] {
			t.Fatalf("point %d total: got %v want %v", i, series[i].Total, wantTotals[i])
		}
	}
}

func TestDailySeries_EmptyInputStaysDense(t *testing.T) {
	series := DailySeries(nil, 5, day(2024, time.June, 3))
	if len(series) != 5 {
		t.Fatalf("expected 5 points for empty input, got %d", len(series))
	}
	for i, p := range series {
		if p.Total != 0 {
			t.Fatalf("point %d should be zero, got %v", i, p.Total)
		}
	}
}

func TestDailySeries_DefaultLength(t *testing.T) {
	series := DailySeries(nil, 0, day(2024, time.June, 3))
	if len(series) != DefaultSeriesDays {
		t.Fatalf("expected %d points by default, got %d", DefaultSeriesDays, len(series))
	}
}

func TestTotalsByFoodType_OrderedByTotalDesc(t *testing.T) {
	records := []Feeding{
		{ID: "f1", FoodType: "hay", Quantity: 5},
		{ID: "f2", FoodType: "grain", Quantity: 3},
		{ID: "f3", FoodType: "hay", Quantity: 1},
		{ID: "f4", FoodType: "silage", Quantity: 6},
	}

	got := TotalsByFoodType(records)
	if len(got) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(got))
	}
	if got[0].FoodType != "hay" && got[0].FoodType != "silage" {
		t.Fatalf("unexpected first group %+v", got[0])
	}
	// hay y silage empatan en 6: desempate alfabético
	if got[0].FoodType != "hay" || got[1].FoodType != "silage" || got[2].FoodType != "grain" {
		t.Fatalf("wrong order: %+v", got)
	}
	if got[0].Total != 6 || got[0].Count != 2 {
		t.Fatalf("hay group: %+v", got[0])
	}
}
