package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-registry/internal/domain/reproduction"
)

type reproductionRepo struct {
	mu   sync.RWMutex
	byID map[string]reproduction.Record
}

func NewReproductionRepo() reproduction.Repository {
	return &reproductionRepo{
		byID: make(map[string]reproduction.Record),
	}
}

func (r *reproductionRepo) Create(ctx context.Context, rec reproduction.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *reproductionRepo) Update(ctx context.Context, rec reproduction.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return reproduction.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *reproductionRepo) GetByID(ctx context.Context, id string) (reproduction.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return reproduction.Record{}, reproduction.ErrNotFound
	}
	return rec, nil
}

func (r *reproductionRepo) List(ctx context.Context, filter reproduction.ListFilter) ([]reproduction.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reproduction.Record, 0)
	for _, rec := range r.byID {
		if filter.Type != "" && rec.Type != filter.Type {
			continue
		}
		if filter.AnimalID != "" && rec.AnimalID != filter.AnimalID {
			continue
		}
		out = append(out, rec)
	}

	// Eventos más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *reproductionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return reproduction.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *reproductionRepo) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, rec := range r.byID {
		if rec.AnimalID == animalID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
