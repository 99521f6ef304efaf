package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vetco/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, full_name, role, phone,
			address, organization, bio, avatar_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID,
		u.Email,
		u.FullName,
		string(u.Role),
		u.Phone,
		u.Address,
		u.Organization,
		u.Bio,
		u.AvatarPath,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, email, full_name, role, phone,
			address, organization, bio, avatar_url,
			created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			full_name = $2,
			phone = $3,
			address = $4,
			organization = $5,
			bio = $6,
			avatar_url = $7,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID,
		u.FullName,
		u.Phone,
		u.Address,
		u.Organization,
		u.Bio,
		u.AvatarPath,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) CountByRole(ctx context.Context) (map[users.Role]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT role, COUNT(*)
		FROM users
		GROUP BY role
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[users.Role]int)
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[users.Role(role)] = n
	}
	return counts, rows.Err()
}

// Los campos opcionales de texto son NOT NULL DEFAULT '' en la migración:
// se leen y escriben como string plano, igual que en el adapter en memoria.
func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	var role string

	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&role,
		&u.Phone,
		&u.Address,
		&u.Organization,
		&u.Bio,
		&u.AvatarPath,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}

	u.Role = users.Role(role)
	return u, nil
}
