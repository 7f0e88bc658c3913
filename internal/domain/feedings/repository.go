package feedings

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, f Feeding) error
	Update(ctx context.Context, f Feeding) error
	GetByID(ctx context.Context, id string) (Feeding, error)
	List(ctx context.Context, filter ListFilter) ([]Feeding, error)
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) (int, error)
}

// ListFilter: por animal y rango de fechas (inclusive ambos extremos, a
// granularidad de día).
type ListFilter struct {
	AnimalID string
	DateFrom *time.Time
	DateTo   *time.Time
}
