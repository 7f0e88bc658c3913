package species

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("species name already exists")
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

type AttributeInput struct {
	Name     string
	Type     AttributeType
	Options  []string
	Required bool
}

type CreateInput struct {
	Name        string
	Description string
	Icon        string
	Attributes  []AttributeInput

	HeatCycleDays int
	GestationDays int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Species, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Species{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.HeatCycleDays < 0 || in.GestationDays < 0 {
		return Species{}, fmt.Errorf("%w: cycle days must be non-negative", ErrInvalidInput)
	}

	defs, err := buildAttributes(in.Attributes)
	if err != nil {
		return Species{}, err
	}

	// Nombre único (el repo también lo garantiza; aquí damos mejor error)
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Species{}, ErrDuplicate
	}

	now := s.now()
	sp := Species{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Icon:          strings.TrimSpace(in.Icon),
		Attributes:    defs,
		HeatCycleDays: in.HeatCycleDays,
		GestationDays: in.GestationDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return Species{}, err
	}
	return sp, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Description *string
	Icon        *string

	HeatCycleDays *int
	GestationDays *int
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Species, error) {
	sp, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Species{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Species{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		if name != sp.Name {
			if _, err := s.repo.GetByName(ctx, name); err == nil {
				return Species{}, ErrDuplicate
			}
		}
		sp.Name = name
	}
	if in.Description != nil {
		sp.Description = strings.TrimSpace(*in.Description)
	}
	if in.Icon != nil {
		sp.Icon = strings.TrimSpace(*in.Icon)
	}
	if in.HeatCycleDays != nil {
		if *in.HeatCycleDays < 0 {
			return Species{}, fmt.Errorf("%w: cycle days must be non-negative", ErrInvalidInput)
		}
		sp.HeatCycleDays = *in.HeatCycleDays
	}
	if in.GestationDays != nil {
		if *in.GestationDays < 0 {
			return Species{}, fmt.Errorf("%w: cycle days must be non-negative", ErrInvalidInput)
		}
		sp.GestationDays = *in.GestationDays
	}

	sp.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sp); err != nil {
		return Species{}, err
	}
	return sp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Species, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Species{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Species{}, ErrInvalidInput
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]Species, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// AddAttribute agrega una definición al esquema de la especie.
func (s *Service) AddAttribute(ctx context.Context, speciesID string, in AttributeInput) (Species, error) {
	sp, err := s.repo.GetByID(ctx, strings.TrimSpace(speciesID))
	if err != nil {
		return Species{}, err
	}

	defs, err := buildAttributes([]AttributeInput{in})
	if err != nil {
		return Species{}, err
	}

	sp.Attributes = append(sp.Attributes, defs[0])
	sp.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sp); err != nil {
		return Species{}, err
	}
	return sp, nil
}

// RemoveAttribute quita una definición del esquema. Los valores ya guardados
// en animales quedan huérfanos y se ignoran en lecturas posteriores.
func (s *Service) RemoveAttribute(ctx context.Context, speciesID, attributeID string) (Species, error) {
	sp, err := s.repo.GetByID(ctx, strings.TrimSpace(speciesID))
	if err != nil {
		return Species{}, err
	}

	kept := sp.Attributes[:0]
	found := false
	for _, d := range sp.Attributes {
		if d.ID == attributeID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return Species{}, ErrNotFound
	}

	sp.Attributes = kept
	sp.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sp); err != nil {
		return Species{}, err
	}
	return sp, nil
}

func buildAttributes(ins []AttributeInput) ([]AttributeDefinition, error) {
	defs := make([]AttributeDefinition, 0, len(ins))
	for _, in := range ins {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: attribute name is required", ErrInvalidInput)
		}
		if !in.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown attribute type %q", ErrInvalidInput, in.Type)
		}
		if in.Type == AttributeSelect && len(in.Options) == 0 {
			return nil, fmt.Errorf("%w: attribute %q: select requires options", ErrInvalidInput, name)
		}
		defs = append(defs, AttributeDefinition{
			ID:       uuid.NewString(),
			Name:     name,
			Type:     in.Type,
			Options:  in.Options,
			Required: in.Required,
		})
	}
	return defs, nil
}
