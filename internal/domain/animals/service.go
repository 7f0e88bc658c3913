package animals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/platform/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("animal identifier already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Identifier string
	Name       string
	SpeciesID  string
	BirthDate  *time.Time
	Sex        Sex
	Status     Status
	Image      string
	Notes      string

	CustomAttributes map[string]species.AttributeValue
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		return Animal{}, fmt.Errorf("%w: identifier is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.SpeciesID) == "" {
		return Animal{}, fmt.Errorf("%w: species_id is required", ErrInvalidInput)
	}
	if !in.Sex.Valid() {
		return Animal{}, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, in.Sex)
	}
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if !status.Valid() {
		return Animal{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}

	if _, err := s.repo.GetByIdentifier(ctx, identifier); err == nil {
		return Animal{}, ErrDuplicate
	}

	now := s.now()
	a := Animal{
		ID:               uuid.NewString(),
		Identifier:       identifier,
		Name:             strings.TrimSpace(in.Name),
		SpeciesID:        strings.TrimSpace(in.SpeciesID),
		BirthDate:        normalizeDate(in.BirthDate),
		Sex:              in.Sex,
		Status:           status,
		Image:            strings.TrimSpace(in.Image),
		Notes:            strings.TrimSpace(in.Notes),
		CustomAttributes: in.CustomAttributes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Identifier *string
	Name       *string
	SpeciesID  *string
	BirthDate  *time.Time
	ClearBirth bool
	Sex        *Sex
	Status     *Status
	Image      *string
	Notes      *string

	// nil = no tocar; mapa vacío = limpiar todos los atributos.
	CustomAttributes map[string]species.AttributeValue
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Animal{}, err
	}

	if in.Identifier != nil {
		identifier := strings.TrimSpace(*in.Identifier)
		if identifier == "" {
			return Animal{}, fmt.Errorf("%w: identifier cannot be empty", ErrInvalidInput)
		}
		if identifier != a.Identifier {
			if _, err := s.repo.GetByIdentifier(ctx, identifier); err == nil {
				return Animal{}, ErrDuplicate
			}
		}
		a.Identifier = identifier
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		a.Name = name
	}
	if in.SpeciesID != nil {
		sid := strings.TrimSpace(*in.SpeciesID)
		if sid == "" {
			return Animal{}, fmt.Errorf("%w: species_id cannot be empty", ErrInvalidInput)
		}
		a.SpeciesID = sid
	}
	if in.ClearBirth {
		a.BirthDate = nil
	} else if in.BirthDate != nil {
		a.BirthDate = normalizeDate(in.BirthDate)
	}
	if in.Sex != nil {
		if !in.Sex.Valid() {
			return Animal{}, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, *in.Sex)
		}
		a.Sex = *in.Sex
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Animal{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
		}
		a.Status = *in.Status
	}
	if in.Image != nil {
		a.Image = strings.TrimSpace(*in.Image)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.CustomAttributes != nil {
		a.CustomAttributes = in.CustomAttributes
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (Animal, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByIdentifier(ctx, identifier)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Animal, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountBySpecies(ctx context.Context, speciesID string) (int, error) {
	return s.repo.CountBySpecies(ctx, speciesID)
}

// Females lista hembras activas (candidatas del módulo reproductivo),
// ordenadas por nombre.
func (s *Service) Females(ctx context.Context) ([]Animal, error) {
	items, err := s.repo.List(ctx, ListFilter{Sex: SexFemale, Status: StatusActive})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// Stats resume el hato: totales por estado y activos por especie.
type Stats struct {
	Total    int
	Active   int
	Sold     int
	Deceased int

	ActiveBySpecies map[string]int
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	st := Stats{ActiveBySpecies: map[string]int{}}
	for _, a := range items {
		st.Total++
		switch a.Status {
		case StatusActive:
			st.Active++
			st.ActiveBySpecies[a.SpeciesID]++
		case StatusSold:
			st.Sold++
		case StatusDeceased:
			st.Deceased++
		}
	}
	return st, nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.Day(*t)
	return &d
}
