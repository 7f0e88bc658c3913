package reproduction

import (
	"testing"
	"time"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/species"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextHeatDate_CrossesMonthAndLeapYear(t *testing.T) {
	got := NextHeatDate(day(2024, time.February, 20), DefaultCycle)
	want := day(2024, time.March, 12)
	if !got.Equal(want) {
		t.Fatalf("next heat: got %v want %v", got, want)
	}
}

func TestNextHeatDate_NormalizesTimeOfDay(t *testing.T) {
	base := time.Date(2024, time.February, 20, 23, 45, 0, 0, time.UTC)
	got := NextHeatDate(base, DefaultCycle)
	want := day(2024, time.March, 12)
	if !got.Equal(want) {
		t.Fatalf("next heat with time-of-day: got %v want %v", got, want)
	}
}

func TestDueDate_CrossesYear(t *testing.T) {
	got := DueDate(day(2023, time.December, 25), DefaultCycle)
	want := day(2024, time.April, 17)
	if !got.Equal(want) {
		t.Fatalf("due date: got %v want %v", got, want)
	}
}

func TestCycleForSpecies_FallsBackToDefaults(t *testing.T) {
	c := CycleForSpecies(species.Species{})
	if c.HeatDays != DefaultHeatCycleDays || c.GestationDays != DefaultGestationDays {
		t.Fatalf("zero species should use defaults, got %+v", c)
	}

	c = CycleForSpecies(species.Species{HeatCycleDays: 17, GestationDays: 150})
	if c.HeatDays != 17 || c.GestationDays != 150 {
		t.Fatalf("species overrides ignored, got %+v", c)
	}
}

// -------------------------
// UpcomingHeats
// -------------------------

func testAnimals() (AnimalLookup, CycleResolver) {
	byID := map[string]animals.Animal{
		"a1": {ID: "a1", Identifier: "V-001", Name: "Lola"},
		"a2": {ID: "a2", Identifier: "V-002", Name: "Mora"},
	}
	lookup := func(id string) (animals.Animal, bool) {
		a, ok := byID[id]
		return a, ok
	}
	cycleOf := func(animals.Animal) Cycle { return DefaultCycle }
	return lookup, cycleOf
}

func TestUpcomingHeats_WindowInclusiveBothEnds(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	records := []Record{
		// predicho 2024-06-01: hoy, entra
		{ID: "r1", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 11)},
		// predicho 2024-06-15: borde superior con ventana 14, entra
		{ID: "r2", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 25)},
		// predicho 2024-06-16: fuera por un día
		{ID: "r3", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 26)},
		// predicho 2024-05-31: ya pasó
		{ID: "r4", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 10)},
		// inseminación: no participa
		{ID: "r5", Type: TypeInsemination, AnimalID: "a1", Date: day(2024, time.May, 20)},
	}

	got, skipped := UpcomingHeats(records, lookup, cycleOf, 14, now)
	if skipped != 0 {
		t.Fatalf("unexpected skipped count %d", skipped)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming heats, got %d: %+v", len(got), got)
	}
	if got[0].RecordID != "r1" || got[1].RecordID != "r2" {
		t.Fatalf("wrong order: %s, %s", got[0].RecordID, got[1].RecordID)
	}
	if !got[0].PredictedDate.Equal(day(2024, time.June, 1)) {
		t.Fatalf("r1 predicted: got %v", got[0].PredictedDate)
	}
}

func TestUpcomingHeats_SkipsDanglingAnimals(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	records := []Record{
		{ID: "r1", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 20)},
		{ID: "r2", Type: TypeHeat, AnimalID: "ghost", Date: day(2024, time.May, 20)},
		{ID: "r3", Type: TypeHeat, AnimalID: "a2"}, // fecha cero
	}

	got, skipped := UpcomingHeats(records, lookup, cycleOf, 14, now)
	if len(got) != 1 || got[0].RecordID != "r1" {
		t.Fatalf("expected only r1, got %+v", got)
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped, got %d", skipped)
	}
}

func TestUpcomingHeats_UsesSpeciesCycle(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, _ := testAnimals()

	// Ciclo corto de 10 días: celo del 2024-05-25 se predice 2024-06-04.
	cycleOf := func(animals.Animal) Cycle { return Cycle{HeatDays: 10} }

	records := []Record{
		{ID: "r1", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 25)},
	}

	got, _ := UpcomingHeats(records, lookup, cycleOf, 14, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 upcoming heat, got %d", len(got))
	}
	if !got[0].PredictedDate.Equal(day(2024, time.June, 4)) {
		t.Fatalf("predicted with short cycle: got %v", got[0].PredictedDate)
	}
}

func TestUpcomingHeats_TieBreaksByRecordID(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	// r7 y r2 predicen el mismo día (2024-06-15); entran en orden inverso
	// para comprobar que el desempate es por ID y no por orden de entrada.
	records := []Record{
		{ID: "r7", Type: TypeHeat, AnimalID: "a2", Date: day(2024, time.May, 25)},
		{ID: "r2", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 25)},
		// predicho 2024-06-10: primero por fecha
		{ID: "r9", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 20)},
	}

	got, _ := UpcomingHeats(records, lookup, cycleOf, 14, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 upcoming heats, got %d: %+v", len(got), got)
	}
	if got[0].RecordID != "r9" || got[1].RecordID != "r2" || got[2].RecordID != "r7" {
		t.Fatalf("wrong order: %s, %s, %s", got[0].RecordID, got[1].RecordID, got[2].RecordID)
	}
	if !got[1].PredictedDate.Equal(got[2].PredictedDate) {
		t.Fatalf("tie setup broken: %v vs %v", got[1].PredictedDate, got[2].PredictedDate)
	}
}

func TestUpcomingHeats_IsReadOnly(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	records := []Record{
		{ID: "r1", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 25)},
	}
	before := records[0]

	_, _ = UpcomingHeats(records, lookup, cycleOf, 14, now)
	_, _ = UpcomingHeats(records, lookup, cycleOf, 14, now)

	if records[0] != before {
		t.Fatalf("prediction must not mutate records: %+v", records[0])
	}
}

// -------------------------
// UpcomingBirths
// -------------------------

func TestUpcomingBirths_OnlySuccessfulInseminations(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	records := []Record{
		// parto estimado 2024-06-15, entra
		{ID: "r1", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a1", Date: day(2024, time.February, 22)},
		// pendiente: no entra aunque la fecha caiga en ventana
		{ID: "r2", Type: TypeInsemination, Result: ResultPending, AnimalID: "a1", Date: day(2024, time.February, 22)},
		// fallida: no entra
		{ID: "r3", Type: TypeInsemination, Result: ResultFailed, AnimalID: "a2", Date: day(2024, time.February, 22)},
		// parto estimado 2024-05-31: ya pasó
		{ID: "r4", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a2", Date: day(2024, time.February, 7)},
		// celo: no participa
		{ID: "r5", Type: TypeHeat, AnimalID: "a1", Date: day(2024, time.May, 25)},
	}

	got, skipped := UpcomingBirths(records, lookup, cycleOf, 30, now)
	if skipped != 0 {
		t.Fatalf("unexpected skipped count %d", skipped)
	}
	if len(got) != 1 || got[0].RecordID != "r1" {
		t.Fatalf("expected only r1, got %+v", got)
	}
	if !got[0].DueDate.Equal(day(2024, time.June, 15)) {
		t.Fatalf("due date: got %v", got[0].DueDate)
	}
}

func TestUpcomingBirths_WindowBoundaries(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	records := []Record{
		// parto estimado 2024-07-01: borde superior con ventana 30, entra
		{ID: "r1", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a1", Date: day(2024, time.March, 9)},
		// parto estimado 2024-07-02: fuera
		{ID: "r2", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a1", Date: day(2024, time.March, 10)},
		// parto estimado 2024-06-01: hoy, entra
		{ID: "r3", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a2", Date: day(2024, time.February, 8)},
	}

	got, _ := UpcomingBirths(records, lookup, cycleOf, 30, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming births, got %d: %+v", len(got), got)
	}
	if got[0].RecordID != "r3" || got[1].RecordID != "r1" {
		t.Fatalf("wrong order: %s, %s", got[0].RecordID, got[1].RecordID)
	}
}

func TestUpcomingBirths_TieBreaksByRecordID(t *testing.T) {
	now := day(2024, time.June, 1)
	lookup, cycleOf := testAnimals()

	// Misma fecha de inseminación, mismo parto estimado (2024-06-15);
	// entrada en orden inverso de ID.
	records := []Record{
		{ID: "rb", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a2", Date: day(2024, time.February, 22)},
		{ID: "ra", Type: TypeInsemination, Result: ResultSuccess, AnimalID: "a1", Date: day(2024, time.February, 22)},
	}

	got, _ := UpcomingBirths(records, lookup, cycleOf, 30, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming births, got %d: %+v", len(got), got)
	}
	if got[0].RecordID != "ra" || got[1].RecordID != "rb" {
		t.Fatalf("wrong order: %s, %s", got[0].RecordID, got[1].RecordID)
	}
	if !got[0].DueDate.Equal(got[1].DueDate) {
		t.Fatalf("tie setup broken: %v vs %v", got[0].DueDate, got[1].DueDate)
	}
}
