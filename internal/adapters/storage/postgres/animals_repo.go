package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vetco/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, farmer_id, name, type, breed,
	age, weight, gender, health_status, vaccination_status, description,
	created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.FarmerID,
		a.Name,
		a.Type,
		a.Breed,
		toNullInt(a.Age),
		toNullFloat(a.Weight),
		a.Gender,
		string(a.HealthStatus),
		a.VaccinationStatus,
		a.Description,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

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

	a, err := scanAnimal(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) ListByFarmer(ctx context.Context, farmerID string) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE farmer_id = $1
		ORDER BY created_at DESC
	`, farmerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []animals.Animal
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			type = $3,
			breed = $4,
			age = $5,
			weight = $6,
			gender = $7,
			health_status = $8,
			vaccination_status = $9,
			description = $10,
			updated_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Type,
		a.Breed,
		toNullInt(a.Age),
		toNullFloat(a.Weight),
		a.Gender,
		string(a.HealthStatus),
		a.VaccinationStatus,
		a.Description,
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

func (r *AnimalsRepo) CountByFarmer(ctx context.Context, farmerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM animals WHERE farmer_id = $1
	`, farmerID).Scan(&n)
	return n, err
}

// Solo age y weight admiten NULL en la tabla; los textos opcionales
// son NOT NULL DEFAULT '' y viajan como string plano.
func scanAnimal(scan func(dest ...any) error) (animals.Animal, error) {
	var a animals.Animal
	var status string
	var age sql.NullInt64
	var weight sql.NullFloat64

	if err := scan(
		&a.ID,
		&a.FarmerID,
		&a.Name,
		&a.Type,
		&a.Breed,
		&age,
		&weight,
		&a.Gender,
		&status,
		&a.VaccinationStatus,
		&a.Description,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Age = fromNullInt(age)
	a.Weight = fromNullFloat(weight)
	a.HealthStatus = animals.HealthStatus(status)
	return a, nil
}
