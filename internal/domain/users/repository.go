package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, u User) error
	CountByRole(ctx context.Context) (map[Role]int, error)
}
