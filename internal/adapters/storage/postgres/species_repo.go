package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"livestock-registry/internal/domain/species"
)

type SpeciesRepo struct {
	db *sql.DB
}

func NewSpeciesRepo(db *sql.DB) *SpeciesRepo {
	return &SpeciesRepo{db: db}
}

func (r *SpeciesRepo) Create(ctx context.Context, s species.Species) error {
	attrs, err := json.Marshal(s.Attributes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO species (
			id, name, description, icon,
			attributes, heat_cycle_days, gestation_days,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		s.ID,
		s.Name,
		s.Description,
		s.Icon,
		attrs,
		s.HeatCycleDays,
		s.GestationDays,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SpeciesRepo) Update(ctx context.Context, s species.Species) error {
	attrs, err := json.Marshal(s.Attributes)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE species
		SET
			name = $2,
			description = $3,
			icon = $4,
			attributes = $5,
			heat_cycle_days = $6,
			gestation_days = $7,
			updated_at = $8
		WHERE id = $1
	`,
		s.ID,
		s.Name,
		s.Description,
		s.Icon,
		attrs,
		s.HeatCycleDays,
		s.GestationDays,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return species.ErrNotFound
	}
	return nil
}

const speciesColumns = `
	id, name, description, icon,
	attributes, heat_cycle_days, gestation_days,
	created_at, updated_at
`

func (r *SpeciesRepo) GetByID(ctx context.Context, id string) (species.Species, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return species.Species{}, species.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+speciesColumns+`
		FROM species
		WHERE id = $1
	`, id)
	return scanSpecies(row)
}

func (r *SpeciesRepo) GetByName(ctx context.Context, name string) (species.Species, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+speciesColumns+`
		FROM species
		WHERE lower(name) = lower($1)
	`, name)
	return scanSpecies(row)
}

func (r *SpeciesRepo) List(ctx context.Context) ([]species.Species, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+speciesColumns+`
		FROM species
		ORDER BY lower(name) ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]species.Species, 0)
	for rows.Next() {
		s, err := scanSpecies(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SpeciesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM species WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return species.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpecies(row rowScanner) (species.Species, error) {
	var s species.Species
	var attrs []byte
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Icon,
		&attrs,
		&s.HeatCycleDays,
		&s.GestationDays,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return species.Species{}, species.ErrNotFound
		}
		return species.Species{}, err
	}

	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &s.Attributes); err != nil {
			return species.Species{}, err
		}
	}
	return s, nil
}
