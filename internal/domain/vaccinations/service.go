package vaccinations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/platform/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
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
	AnimalID        string
	VaccineName     string
	ApplicationDate time.Time
	NextDoseDate    *time.Time
	Veterinarian    string
	Batch           string
	Notes           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Vaccination, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return Vaccination{}, fmt.Errorf("%w: animal_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.VaccineName) == "" {
		return Vaccination{}, fmt.Errorf("%w: vaccine_name is required", ErrInvalidInput)
	}
	if in.ApplicationDate.IsZero() {
		return Vaccination{}, fmt.Errorf("%w: application_date is required", ErrInvalidInput)
	}

	now := s.now()
	v := Vaccination{
		ID:              uuid.NewString(),
		AnimalID:        strings.TrimSpace(in.AnimalID),
		VaccineName:     strings.TrimSpace(in.VaccineName),
		ApplicationDate: dates.Day(in.ApplicationDate),
		NextDoseDate:    normalizeDate(in.NextDoseDate),
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		Batch:           strings.TrimSpace(in.Batch),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	VaccineName     *string
	ApplicationDate *time.Time
	NextDoseDate    *time.Time
	ClearNextDose   bool
	Veterinarian    *string
	Batch           *string
	Notes           *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Vaccination{}, err
	}

	if in.VaccineName != nil {
		name := strings.TrimSpace(*in.VaccineName)
		if name == "" {
			return Vaccination{}, fmt.Errorf("%w: vaccine_name cannot be empty", ErrInvalidInput)
		}
		v.VaccineName = name
	}
	if in.ApplicationDate != nil {
		if in.ApplicationDate.IsZero() {
			return Vaccination{}, fmt.Errorf("%w: application_date cannot be empty", ErrInvalidInput)
		}
		v.ApplicationDate = dates.Day(*in.ApplicationDate)
	}
	if in.ClearNextDose {
		v.NextDoseDate = nil
	} else if in.NextDoseDate != nil {
		v.NextDoseDate = normalizeDate(in.NextDoseDate)
	}
	if in.Veterinarian != nil {
		v.Veterinarian = strings.TrimSpace(*in.Veterinarian)
	}
	if in.Batch != nil {
		v.Batch = strings.TrimSpace(*in.Batch)
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccination{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Vaccination, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Pending y Overdue clasifican sobre el snapshot actual del repo; el cómputo
// es puro y "now" se inyecta para poder testearlo.
func (s *Service) Pending(ctx context.Context, windowDays int) ([]Vaccination, error) {
	records, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return Pending(records, windowDays, s.now()), nil
}

func (s *Service) Overdue(ctx context.Context) ([]Vaccination, error) {
	records, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return Overdue(records, s.now()), nil
}

func (s *Service) DueInMonth(ctx context.Context, year int, month time.Month) ([]Vaccination, error) {
	records, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return DueInMonth(records, year, month), nil
}

// Kind, RecentByAnimal y DeleteByAnimal implementan animals.RecordModule.

func (s *Service) Kind() string { return "vaccinations" }

func (s *Service) RecentByAnimal(ctx context.Context, animalID string, limit int) ([]animals.RecordSummary, error) {
	records, err := s.repo.List(ctx, ListFilter{AnimalID: animalID})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]animals.RecordSummary, 0, len(records))
	for _, v := range records {
		out = append(out, animals.RecordSummary{
			ID:    v.ID,
			Date:  v.ApplicationDate,
			Label: v.VaccineName,
		})
	}
	return out, nil
}

func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	return s.repo.DeleteByAnimal(ctx, animalID)
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.Day(*t)
	return &d
}
