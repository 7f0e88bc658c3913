package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-registry/internal/domain/feedings"
	"livestock-registry/internal/platform/dates"
)

type feedingsRepo struct {
	mu   sync.RWMutex
	byID map[string]feedings.Feeding
}

func NewFeedingsRepo() feedings.Repository {
	return &feedingsRepo{
		byID: make(map[string]feedings.Feeding),
	}
}

func (r *feedingsRepo) Create(ctx context.Context, f feedings.Feeding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("feeding id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("feeding already exists")
	}
	r.byID[f.ID] = f
	return nil
}

func (r *feedingsRepo) Update(ctx context.Context, f feedings.Feeding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[f.ID]; !exists {
		return feedings.ErrNotFound
	}
	r.byID[f.ID] = f
	return nil
}

func (r *feedingsRepo) GetByID(ctx context.Context, id string) (feedings.Feeding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return feedings.Feeding{}, feedings.ErrNotFound
	}
	return f, nil
}

func (r *feedingsRepo) List(ctx context.Context, filter feedings.ListFilter) ([]feedings.Feeding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feedings.Feeding, 0)
	for _, f := range r.byID {
		if filter.AnimalID != "" && f.AnimalID != filter.AnimalID {
			continue
		}
		if filter.DateFrom != nil && dates.Day(f.Date).Before(dates.Day(*filter.DateFrom)) {
			continue
		}
		if filter.DateTo != nil && dates.Day(f.Date).After(dates.Day(*filter.DateTo)) {
			continue
		}
		out = append(out, f)
	}

	// Tomas más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *feedingsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return feedings.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *feedingsRepo) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, f := range r.byID {
		if f.AnimalID == animalID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
