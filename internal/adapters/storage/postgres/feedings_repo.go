package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-registry/internal/domain/feedings"
)

type FeedingsRepo struct {
	db *sql.DB
}

func NewFeedingsRepo(db *sql.DB) *FeedingsRepo {
	return &FeedingsRepo{db: db}
}

func (r *FeedingsRepo) Create(ctx context.Context, f feedings.Feeding) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedings (
			id, animal_id, food_type,
			quantity, unit, date, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		f.ID,
		f.AnimalID,
		f.FoodType,
		f.Quantity,
		string(f.Unit),
		f.Date,
		f.Notes,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *FeedingsRepo) Update(ctx context.Context, f feedings.Feeding) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feedings
		SET
			food_type = $2,
			quantity = $3,
			unit = $4,
			date = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		f.ID,
		f.FoodType,
		f.Quantity,
		string(f.Unit),
		f.Date,
		f.Notes,
		f.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return feedings.ErrNotFound
	}
	return nil
}

const feedingColumns = `
	id, animal_id, food_type,
	quantity, unit, date, notes,
	created_at, updated_at
`

func (r *FeedingsRepo) GetByID(ctx context.Context, id string) (feedings.Feeding, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return feedings.Feeding{}, feedings.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+feedingColumns+`
		FROM feedings
		WHERE id = $1
	`, id)
	return scanFeeding(row)
}

func (r *FeedingsRepo) List(ctx context.Context, filter feedings.ListFilter) ([]feedings.Feeding, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.AnimalID != "" {
		args = append(args, filter.AnimalID)
		where = append(where, "animal_id = $"+itoa(len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, "date >= $"+itoa(len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, "date <= $"+itoa(len(args)))
	}

	q := `SELECT ` + feedingColumns + ` FROM feedings`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedings.Feeding, 0)
	for rows.Next() {
		f, err := scanFeeding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FeedingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return feedings.ErrNotFound
	}
	return nil
}

func (r *FeedingsRepo) DeleteByAnimal(ctx context.Context, animalID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM feedings WHERE animal_id = $1`, animalID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanFeeding(row rowScanner) (feedings.Feeding, error) {
	var f feedings.Feeding
	var unit string
	if err := row.Scan(
		&f.ID,
		&f.AnimalID,
		&f.FoodType,
		&f.Quantity,
		&unit,
		&f.Date,
		&f.Notes,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return feedings.Feeding{}, feedings.ErrNotFound
		}
		return feedings.Feeding{}, err
	}

	f.Unit = feedings.Unit(unit)
	return f, nil
}
