package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/species"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	attrs, err := json.Marshal(a.CustomAttributes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, identifier, name, species_id,
			birth_date, sex, status,
			image, notes, custom_attributes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.Identifier,
		a.Name,
		a.SpeciesID,
		toNullDate(a.BirthDate),
		string(a.Sex),
		string(a.Status),
		a.Image,
		a.Notes,
		attrs,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	attrs, err := json.Marshal(a.CustomAttributes)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			identifier = $2,
			name = $3,
			species_id = $4,
			birth_date = $5,
			sex = $6,
			status = $7,
			image = $8,
			notes = $9,
			custom_attributes = $10,
			updated_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.Identifier,
		a.Name,
		a.SpeciesID,
		toNullDate(a.BirthDate),
		string(a.Sex),
		string(a.Status),
		a.Image,
		a.Notes,
		attrs,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

const animalColumns = `
	id, identifier, name, species_id,
	birth_date, sex, status,
	image, notes, custom_attributes,
	created_at, updated_at
`

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) GetByIdentifier(ctx context.Context, identifier string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE lower(identifier) = lower($1)
	`, identifier)
	return scanAnimal(row)
}

func (r *AnimalsRepo) List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.SpeciesID != "" {
		args = append(args, filter.SpeciesID)
		where = append(where, "species_id = $"+itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, "status = $"+itoa(len(args)))
	}
	if filter.Sex != "" {
		args = append(args, string(filter.Sex))
		where = append(where, "sex = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+strings.ToLower(s)+"%")
		n := itoa(len(args))
		where = append(where, "(lower(name) LIKE $"+n+" OR lower(identifier) LIKE $"+n+")")
	}

	q := `SELECT ` + animalColumns + ` FROM animals`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) CountBySpecies(ctx context.Context, speciesID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM animals WHERE species_id = $1`, speciesID,
	).Scan(&n)
	return n, err
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var bd sql.NullTime
	var sex, status string
	var attrs []byte
	if err := row.Scan(
		&a.ID,
		&a.Identifier,
		&a.Name,
		&a.SpeciesID,
		&bd,
		&sex,
		&status,
		&a.Image,
		&a.Notes,
		&attrs,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}

	a.BirthDate = fromNullDate(bd)
	a.Sex = animals.Sex(sex)
	a.Status = animals.Status(status)

	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &a.CustomAttributes); err != nil {
			return animals.Animal{}, err
		}
	}
	if a.CustomAttributes == nil {
		a.CustomAttributes = make(map[string]species.AttributeValue)
	}
	return a, nil
}
