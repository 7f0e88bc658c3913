package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-registry/internal/domain/reproduction"
)

type ReproductionRepo struct {
	db *sql.DB
}

func NewReproductionRepo(db *sql.DB) *ReproductionRepo {
	return &ReproductionRepo{db: db}
}

func (r *ReproductionRepo) Create(ctx context.Context, rec reproduction.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reproduction_records (
			id, type, animal_id, date,
			intensity, method, sire_code, result, technician,
			notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		rec.ID,
		string(rec.Type),
		rec.AnimalID,
		rec.Date,
		string(rec.Intensity),
		string(rec.Method),
		rec.SireCode,
		string(rec.Result),
		rec.Technician,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *ReproductionRepo) Update(ctx context.Context, rec reproduction.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reproduction_records
		SET
			date = $2,
			intensity = $3,
			method = $4,
			sire_code = $5,
			result = $6,
			technician = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rec.ID,
		rec.Date,
		string(rec.Intensity),
		string(rec.Method),
		rec.SireCode,
		string(rec.Result),
		rec.Technician,
		rec.Notes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reproduction.ErrNotFound
	}
	return nil
}

const reproductionColumns = `
	id, type, animal_id, date,
	intensity, method, sire_code, result, technician,
	notes, created_at, updated_at
`

func (r *ReproductionRepo) GetByID(ctx context.Context, id string) (reproduction.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reproduction.Record{}, reproduction.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+reproductionColumns+`
		FROM reproduction_records
		WHERE id = $1
	`, id)
	return scanReproduction(row)
}

func (r *ReproductionRepo) List(ctx context.Context, filter reproduction.ListFilter) ([]reproduction.Record, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, "type = $"+itoa(len(args)))
	}
	if filter.AnimalID != "" {
		args = append(args, filter.AnimalID)
		where = append(where, "animal_id = $"+itoa(len(args)))
	}

	q := `SELECT ` + reproductionColumns + ` FROM reproduction_records`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reproduction.Record, 0)
	for rows.Next() {
		rec, err := scanReproduction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ReproductionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reproduction_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reproduction.ErrNotFound
	}
	return nil
}

func (r *ReproductionRepo) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reproduction_records WHERE animal_id = $1`, animalID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanReproduction(row rowScanner) (reproduction.Record, error) {
	var rec reproduction.Record
	var typ, intensity, method, result string
	if err := row.Scan(
		&rec.ID,
		&typ,
		&rec.AnimalID,
		&rec.Date,
		&intensity,
		&method,
		&rec.SireCode,
		&result,
		&rec.Technician,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return reproduction.Record{}, reproduction.ErrNotFound
		}
		return reproduction.Record{}, err
	}

	rec.Type = reproduction.Type(typ)
	rec.Intensity = reproduction.Intensity(intensity)
	rec.Method = reproduction.Method(method)
	rec.Result = reproduction.Result(result)
	return rec, nil
}
