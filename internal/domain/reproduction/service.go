package reproduction

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

type HeatInput struct {
	AnimalID  string
	Date      time.Time
	Intensity Intensity
	Notes     string
}

func (s *Service) CreateHeat(ctx context.Context, in HeatInput) (Record, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return Record{}, fmt.Errorf("%w: animal_id is required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Record{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !in.Intensity.Valid() {
		return Record{}, fmt.Errorf("%w: unknown intensity %q", ErrInvalidInput, in.Intensity)
	}

	now := s.now()
	rec := Record{
		ID:        uuid.NewString(),
		Type:      TypeHeat,
		AnimalID:  strings.TrimSpace(in.AnimalID),
		Date:      dates.Day(in.Date),
		Intensity: in.Intensity,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

type InseminationInput struct {
	AnimalID   string
	Date       time.Time
	Method     Method
	SireCode   string
	Result     Result
	Technician string
	Notes      string
}

func (s *Service) CreateInsemination(ctx context.Context, in InseminationInput) (Record, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return Record{}, fmt.Errorf("%w: animal_id is required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Record{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !in.Method.Valid() {
		return Record{}, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, in.Method)
	}

	// Resultado por defecto: pendiente hasta confirmar preñez.
	result := in.Result
	if result == "" {
		result = ResultPending
	}
	if !result.Valid() {
		return Record{}, fmt.Errorf("%w: unknown result %q", ErrInvalidInput, in.Result)
	}

	now := s.now()
	rec := Record{
		ID:         uuid.NewString(),
		Type:       TypeInsemination,
		AnimalID:   strings.TrimSpace(in.AnimalID),
		Date:       dates.Day(in.Date),
		Method:     in.Method,
		SireCode:   strings.TrimSpace(in.SireCode),
		Result:     result,
		Technician: strings.TrimSpace(in.Technician),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar. Type no se puede cambiar.
	Date       *time.Time
	Intensity  *Intensity
	Method     *Method
	SireCode   *string
	Result     *Result
	Technician *string
	Notes      *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Record, error) {
	rec, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Record{}, err
	}

	if in.Date != nil {
		if in.Date.IsZero() {
			return Record{}, fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
		}
		rec.Date = dates.Day(*in.Date)
	}
	if in.Intensity != nil {
		if rec.Type != TypeHeat {
			return Record{}, fmt.Errorf("%w: intensity only applies to heat records", ErrInvalidInput)
		}
		if !in.Intensity.Valid() {
			return Record{}, fmt.Errorf("%w: unknown intensity %q", ErrInvalidInput, *in.Intensity)
		}
		rec.Intensity = *in.Intensity
	}
	if in.Method != nil {
		if rec.Type != TypeInsemination {
			return Record{}, fmt.Errorf("%w: method only applies to insemination records", ErrInvalidInput)
		}
		if !in.Method.Valid() {
			return Record{}, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, *in.Method)
		}
		rec.Method = *in.Method
	}
	if in.SireCode != nil {
		if rec.Type != TypeInsemination {
			return Record{}, fmt.Errorf("%w: sire_code only applies to insemination records", ErrInvalidInput)
		}
		rec.SireCode = strings.TrimSpace(*in.SireCode)
	}
	if in.Result != nil {
		if rec.Type != TypeInsemination {
			return Record{}, fmt.Errorf("%w: result only applies to insemination records", ErrInvalidInput)
		}
		if !in.Result.Valid() || *in.Result == "" {
			return Record{}, fmt.Errorf("%w: unknown result %q", ErrInvalidInput, *in.Result)
		}
		rec.Result = *in.Result
	}
	if in.Technician != nil {
		if rec.Type != TypeInsemination {
			return Record{}, fmt.Errorf("%w: technician only applies to insemination records", ErrInvalidInput)
		}
		rec.Technician = strings.TrimSpace(*in.Technician)
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}

	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// UpdateResult confirma o descarta una inseminación.
func (s *Service) UpdateResult(ctx context.Context, id string, result Result) (Record, error) {
	return s.Update(ctx, id, UpdateInput{Result: &result})
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Kind, RecentByAnimal y DeleteByAnimal implementan animals.RecordModule.

func (s *Service) Kind() string { return "reproduction" }

func (s *Service) RecentByAnimal(ctx context.Context, animalID string, limit int) ([]animals.RecordSummary, error) {
	records, err := s.repo.List(ctx, ListFilter{AnimalID: animalID})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]animals.RecordSummary, 0, len(records))
	for _, rec := range records {
		label := string(rec.Type)
		if rec.Type == TypeInsemination {
			label = fmt.Sprintf("%s (%s)", rec.Type, rec.Result)
		}
		out = append(out, animals.RecordSummary{
			ID:    rec.ID,
			Date:  rec.Date,
			Label: label,
		})
	}
	return out, nil
}

func (s *Service) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	return s.repo.DeleteByAnimal(ctx, animalID)
}
