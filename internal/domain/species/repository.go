package species

import "context"

type Repository interface {
	Create(ctx context.Context, s Species) error
	Update(ctx context.Context, s Species) error
	GetByID(ctx context.Context, id string) (Species, error)
	GetByName(ctx context.Context, name string) (Species, error)
	List(ctx context.Context) ([]Species, error)
	Delete(ctx context.Context, id string) error
}
