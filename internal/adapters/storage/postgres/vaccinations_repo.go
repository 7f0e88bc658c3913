package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-registry/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, animal_id, vaccine_name,
			application_date, next_dose_date,
			veterinarian, batch, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		v.ID,
		v.AnimalID,
		v.VaccineName,
		v.ApplicationDate,
		toNullDate(v.NextDoseDate),
		v.Veterinarian,
		v.Batch,
		v.Notes,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			vaccine_name = $2,
			application_date = $3,
			next_dose_date = $4,
			veterinarian = $5,
			batch = $6,
			notes = $7,
			updated_at = $8
		WHERE id = $1
	`,
		v.ID,
		v.VaccineName,
		v.ApplicationDate,
		toNullDate(v.NextDoseDate),
		v.Veterinarian,
		v.Batch,
		v.Notes,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

const vaccinationColumns = `
	id, animal_id, vaccine_name,
	application_date, next_dose_date,
	veterinarian, batch, notes,
	created_at, updated_at
`

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE id = $1
	`, id)
	return scanVaccination(row)
}

func (r *VaccinationsRepo) List(ctx context.Context, filter vaccinations.ListFilter) ([]vaccinations.Vaccination, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.AnimalID != "" {
		args = append(args, filter.AnimalID)
		where = append(where, "animal_id = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+strings.ToLower(s)+"%")
		n := itoa(len(args))
		where = append(where, "(lower(vaccine_name) LIKE $"+n+" OR lower(veterinarian) LIKE $"+n+")")
	}

	q := `SELECT ` + vaccinationColumns + ` FROM vaccinations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY application_date DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM vaccinations WHERE animal_id = $1`, animalID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanVaccination(row rowScanner) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	var next sql.NullTime
	if err := row.Scan(
		&v.ID,
		&v.AnimalID,
		&v.VaccineName,
		&v.ApplicationDate,
		&next,
		&v.Veterinarian,
		&v.Batch,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}

	v.NextDoseDate = fromNullDate(next)
	return v, nil
}
