package vaccinations

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	Update(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)
	List(ctx context.Context, filter ListFilter) ([]Vaccination, error)
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) (int, error)
}

// ListFilter: por animal y búsqueda por vacuna o veterinario (substring,
// case-insensitive).
type ListFilter struct {
	AnimalID string
	Search   string
}
