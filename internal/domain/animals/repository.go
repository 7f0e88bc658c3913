package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByIdentifier(ctx context.Context, identifier string) (Animal, error)
	List(ctx context.Context, filter ListFilter) ([]Animal, error)
	Delete(ctx context.Context, id string) error
	CountBySpecies(ctx context.Context, speciesID string) (int, error)
}

// ListFilter replica los filtros de listado: especie, estado, sexo y búsqueda
// por nombre o identificador (substring, case-insensitive).
type ListFilter struct {
	SpeciesID string
	Status    Status
	Sex       Sex
	Search    string
}
