package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vetco/internal/domain/healthrecords"
)

type HealthRecordsRepo struct {
	db *sql.DB
}

func NewHealthRecordsRepo(db *sql.DB) *HealthRecordsRepo {
	return &HealthRecordsRepo{db: db}
}

const recordColumns = `
	id, animal_id, title, description, treatment,
	vet_name, cost, record_date, created_at
`

func (r *HealthRecordsRepo) Create(ctx context.Context, rec healthrecords.HealthRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (`+recordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Title,
		rec.Description,
		rec.Treatment,
		rec.VetName,
		toNullFloat(rec.Cost),
		rec.RecordDate,
		rec.CreatedAt,
	)
	return err
}

func (r *HealthRecordsRepo) GetByID(ctx context.Context, id string) (healthrecords.HealthRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return healthrecords.HealthRecord{}, healthrecords.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM health_records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return healthrecords.HealthRecord{}, healthrecords.ErrNotFound
		}
		return healthrecords.HealthRecord{}, err
	}
	return rec, nil
}

func (r *HealthRecordsRepo) ListByAnimal(ctx context.Context, animalID string) ([]healthrecords.HealthRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM health_records
		WHERE animal_id = $1
		ORDER BY record_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *HealthRecordsRepo) ListRecent(ctx context.Context, limit int) ([]healthrecords.HealthRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM health_records
		ORDER BY record_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *HealthRecordsRepo) Update(ctx context.Context, rec healthrecords.HealthRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_records
		SET
			title = $2,
			description = $3,
			treatment = $4,
			vet_name = $5,
			cost = $6
		WHERE id = $1
	`,
		rec.ID,
		rec.Title,
		rec.Description,
		rec.Treatment,
		rec.VetName,
		toNullFloat(rec.Cost),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return healthrecords.ErrNotFound
	}
	return nil
}

func (r *HealthRecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return healthrecords.ErrNotFound
	}
	return nil
}

// DeleteByAnimal es redundante con el FK ON DELETE CASCADE de la migración,
// pero mantiene el contrato del Repository idéntico al adapter en memoria.
func (r *HealthRecordsRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE animal_id = $1`, animalID)
	return err
}

func collectRecords(rows *sql.Rows) ([]healthrecords.HealthRecord, error) {
	var out []healthrecords.HealthRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// cost es la única columna NULLable: description, treatment y vet_name
// son NOT NULL DEFAULT '' y se manejan como string plano.
func scanRecord(scan func(dest ...any) error) (healthrecords.HealthRecord, error) {
	var rec healthrecords.HealthRecord
	var cost sql.NullFloat64

	if err := scan(
		&rec.ID,
		&rec.AnimalID,
		&rec.Title,
		&rec.Description,
		&rec.Treatment,
		&rec.VetName,
		&cost,
		&rec.RecordDate,
		&rec.CreatedAt,
	); err != nil {
		return healthrecords.HealthRecord{}, err
	}

	rec.Cost = fromNullFloat(cost)
	return rec, nil
}
