package feedings

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
	AnimalID string
	FoodType string
	Quantity float64
	Unit     Unit
	Date     time.Time
	Notes    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Feeding, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return Feeding{}, fmt.Errorf("%w: animal_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.FoodType) == "" {
		return Feeding{}, fmt.Errorf("%w: food_type is required", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return Feeding{}, fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
	}
	if !in.Unit.Valid() {
		return Feeding{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, in.Unit)
	}
	if in.Date.IsZero() {
		return Feeding{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := s.now()
	f := Feeding{
		ID:        uuid.NewString(),
		AnimalID:  strings.TrimSpace(in.AnimalID),
		FoodType:  strings.TrimSpace(in.FoodType),
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Date:      dates.Day(in.Date),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return Feeding{}, err
	}
	return f, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	FoodType *string
	Quantity *float64
	Unit     *Unit
	Date     *time.Time
	Notes    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Feeding, error) {
	f, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Feeding{}, err
	}

	if in.FoodType != nil {
		ft := strings.TrimSpace(*in.FoodType)
		if ft == "" {
			return Feeding{}, fmt.Errorf("%w: food_type cannot be empty", ErrInvalidInput)
		}
		f.FoodType = ft
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return Feeding{}, fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
		}
		f.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		if !in.Unit.Valid() {
			return Feeding{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, *in.Unit)
		}
		f.Unit = *in.Unit
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Feeding{}, fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
		}
		f.Date = dates.Day(*in.Date)
	}
	if in.Notes != nil {
		f.Notes = strings.TrimSpace(*in.Notes)
	}

	f.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, f); err != nil {
		return Feeding{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Feeding, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Feeding{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Feeding, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	records, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}
	return ConsumptionStats(records, s.now()), nil
}

func (s *Service) DailySeries(ctx context.Context, days int) ([]DailyPoint, error) {
	records, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return DailySeries(records, days, s.now()), nil
}

func (s *Service) TotalsByFoodType(ctx context.Context) ([]FoodTypeTotal, error) {
	records, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return TotalsByFoodType(records), nil
}

// Kind, RecentByAnimal y DeleteByAnimal implementan animals.RecordModule.

func (s *Service) Kind() string { return "feedings" }

func (s *Service) RecentByAnimal(ctx context.Context, animalID string, limit int) ([]animals.RecordSummary, error) {
	records, err := s.repo.List(ctx, ListFilter{AnimalID: animalID})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]animals.RecordSummary, 0, len(records))
	for _, f := range records {
		out = append(out, animals.RecordSummary{
			ID:    f.ID,
			Date:  f.Date,
			Label: fmt.Sprintf("%s %.2f %s", f.FoodType, f.Quantity, f.Unit),
		})
	}
	return out, nil
}

func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	return s.repo.DeleteByAnimal(ctx, animalID)
}
