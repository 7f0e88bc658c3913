package animals

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetByIdentifier(ctx context.Context, identifier string) (Animal, error) {
	for _, a := range r.byID {
		if strings.EqualFold(a.Identifier, identifier) {
			return a, nil
		}
	}
	return Animal{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Sex != "" && a.Sex != filter.Sex {
			continue
		}
		if filter.SpeciesID != "" && a.SpeciesID != filter.SpeciesID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) CountBySpecies(ctx context.Context, speciesID string) (int, error) {
	n := 0
	for _, a := range r.byID {
		if a.SpeciesID == speciesID {
			n++
		}
	}
	return n, nil
}

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsAndNormalization(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	birth := time.Date(2022, time.March, 10, 17, 45, 0, 0, time.UTC)
	a, err := svc.Create(ctx, CreateInput{
		Identifier: "  V-001 ",
		Name:       " Lola ",
		SpeciesID:  "sp1",
		BirthDate:  &birth,
		Sex:        SexFemale,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected generated id")
	}
	if a.Identifier != "V-001" || a.Name != "Lola" {
		t.Fatalf("fields not trimmed: %+v", a)
	}
	if a.Status != StatusActive {
		t.Fatalf("expected default status active, got %s", a.Status)
	}
	if a.BirthDate == nil || a.BirthDate.Hour() != 0 {
		t.Fatalf("birth date not normalized to day: %v", a.BirthDate)
	}
}

func TestCreate_DuplicateIdentifier(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Identifier: "V-001", Name: "Lola", SpeciesID: "sp1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreateInput{Identifier: "v-001", Name: "Otra", SpeciesID: "sp1"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreate_RejectsBadEnums(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Identifier: "V-001", Name: "Lola", SpeciesID: "sp1", Sex: "otro"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for sex, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{Identifier: "V-001", Name: "Lola", SpeciesID: "sp1", Status: "vendida"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for status, got %v", err)
	}
}

func TestUpdate_ClearBirthDate(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	birth := time.Date(2022, time.March, 10, 0, 0, 0, 0, time.UTC)
	a, err := svc.Create(ctx, CreateInput{Identifier: "V-001", Name: "Lola", SpeciesID: "sp1", BirthDate: &birth})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Update(ctx, a.ID, UpdateInput{ClearBirth: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.BirthDate != nil {
		t.Fatalf("birth date should be cleared, got %v", got.BirthDate)
	}
}

func TestFemales_OnlyActiveFemalesSorted(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	seed := []CreateInput{
		{Identifier: "V-001", Name: "Zoe", SpeciesID: "sp1", Sex: SexFemale},
		{Identifier: "V-002", Name: "Ana", SpeciesID: "sp1", Sex: SexFemale},
		{Identifier: "V-003", Name: "Toro", SpeciesID: "sp1", Sex: SexMale},
		{Identifier: "V-004", Name: "Beta", SpeciesID: "sp1", Sex: SexFemale, Status: StatusSold},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seed %s: %v", in.Identifier, err)
		}
	}

	got, err := svc.Females(ctx)
	if err != nil {
		t.Fatalf("females: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 females, got %d", len(got))
	}
	if got[0].Name != "Ana" || got[1].Name != "Zoe" {
		t.Fatalf("wrong order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestStats_CountsByStatusAndSpecies(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	seed := []CreateInput{
		{Identifier: "V-001", Name: "A", SpeciesID: "sp1"},
		{Identifier: "V-002", Name: "B", SpeciesID: "sp1"},
		{Identifier: "V-003", Name: "C", SpeciesID: "sp2"},
		{Identifier: "V-004", Name: "D", SpeciesID: "sp1", Status: StatusSold},
		{Identifier: "V-005", Name: "E", SpeciesID: "sp2", Status: StatusDeceased},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seed %s: %v", in.Identifier, err)
		}
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 5 || st.Active != 3 || st.Sold != 1 || st.Deceased != 1 {
		t.Fatalf("totals: %+v", st)
	}
	if st.ActiveBySpecies["sp1"] != 2 || st.ActiveBySpecies["sp2"] != 1 {
		t.Fatalf("active by species: %+v", st.ActiveBySpecies)
	}
}
