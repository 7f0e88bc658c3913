package vaccinations

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestPending_WindowInclusiveBothEnds(t *testing.T) {
	now := day(2024, time.June, 1)

	records := []Vaccination{
		{ID: "v1", NextDoseDate: dayPtr(2024, time.June, 1)},  // vence hoy: pendiente
		{ID: "v2", NextDoseDate: dayPtr(2024, time.June, 8)},  // borde superior ventana 7
		{ID: "v3", NextDoseDate: dayPtr(2024, time.June, 9)},  // fuera por un día
		{ID: "v4", NextDoseDate: dayPtr(2024, time.May, 31)},  // vencida
		{ID: "v5"},                                            // sin próxima dosis
	}

	got := Pending(records, 7, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 pending, got %d: %+v", len(got), got)
	}
	if got[0].ID != "v1" || got[1].ID != "v2" {
		t.Fatalf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestOverdue_StrictlyBeforeToday(t *testing.T) {
	now := day(2024, time.June, 1)

	records := []Vaccination{
		{ID: "v1", NextDoseDate: dayPtr(2024, time.May, 31)},
		{ID: "v2", NextDoseDate: dayPtr(2024, time.June, 1)}, // hoy no es vencida
		{ID: "v3", NextDoseDate: dayPtr(2024, time.April, 1)},
		{ID: "v4"},
	}

	got := Overdue(records, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 overdue, got %d", len(got))
	}
	if got[0].ID != "v3" || got[1].ID != "v1" {
		t.Fatalf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestPendingAndOverdue_Partition(t *testing.T) {
	now := day(2024, time.June, 1)

	records := []Vaccination{
		{ID: "v1", NextDoseDate: dayPtr(2024, time.May, 20)},
		{ID: "v2", NextDoseDate: dayPtr(2024, time.June, 1)},
		{ID: "v3", NextDoseDate: dayPtr(2024, time.June, 5)},
		{ID: "v4", NextDoseDate: dayPtr(2024, time.June, 30)},
		{ID: "v5"},
	}

	pending := Pending(records, 7, now)
	overdue := Overdue(records, now)

	seen := map[string]bool{}
	for _, v := range pending {
		seen[v.ID] = true
	}
	for _, v := range overdue {
		if seen[v.ID] {
			t.Fatalf("%s is both pending and overdue", v.ID)
		}
		seen[v.ID] = true
	}

	// v4 queda fuera de ambas (lejana), v5 también (sin fecha)
	if seen["v4"] || seen["v5"] {
		t.Fatalf("v4/v5 should be in neither set: %v", seen)
	}
	if !seen["v1"] || !seen["v2"] || !seen["v3"] {
		t.Fatalf("missing expected entries: %v", seen)
	}
}

func TestPending_DefaultWindow(t *testing.T) {
	now := day(2024, time.June, 1)

	records := []Vaccination{
		{ID: "v1", NextDoseDate: dayPtr(2024, time.June, 8)},  // dentro de 7
		{ID: "v2", NextDoseDate: dayPtr(2024, time.June, 12)}, // fuera de 7
	}

	got := Pending(records, 0, now)
	if len(got) != 1 || got[0].ID != "v1" {
		t.Fatalf("default window should be %d days, got %+v", DefaultPendingWindowDays, got)
	}
}

func TestDueInMonth(t *testing.T) {
	records := []Vaccination{
		{ID: "v1", NextDoseDate: dayPtr(2024, time.June, 1)},
		{ID: "v2", NextDoseDate: dayPtr(2024, time.June, 30)},
		{ID: "v3", NextDoseDate: dayPtr(2024, time.July, 1)},
		{ID: "v4", NextDoseDate: dayPtr(2024, time.May, 31)},
		{ID: "v5"},
	}

	got := DueInMonth(records, 2024, time.June)
	if len(got) != 2 {
		t.Fatalf("expected 2 due in june, got %d", len(got))
	}
	if got[0].ID != "v1" || got[1].ID != "v2" {
		t.Fatalf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}
