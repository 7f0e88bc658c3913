package reproduction

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) (int, error)
}

type ListFilter struct {
	Type     Type
	AnimalID string
}
