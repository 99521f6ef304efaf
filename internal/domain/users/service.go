package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	ID       string
	Email    string
	FullName string
	Role     string
	Phone    string
}

// Create inserta el perfil espejo tras el sign-up en GoTrue.
// El ID viene del auth record; no se genera acá.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	id := strings.TrimSpace(in.ID)
	email := strings.TrimSpace(in.Email)
	if id == "" || email == "" {
		return User{}, ErrInvalidInput
	}

	role := Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = RoleFarmer
	}
	if !role.Valid() {
		return User{}, ErrInvalidInput
	}

	now := s.now()
	u := User{
		ID:        id,
		Email:     email,
		FullName:  strings.TrimSpace(in.FullName),
		Role:      role,
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// RoleOf devuelve el rol almacenado para una identidad. Un usuario sin
// fila de perfil no es error duro: rol vacío (el resolver decide fallback).
func (s *Service) RoleOf(ctx context.Context, id string) (Role, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.Role, nil
}

type UpdateProfileInput struct {
	FullName     *string
	Phone        *string
	Address      *string
	Organization *string
	Bio          *string
}

// UpdateProfile aplica un PATCH sobre los campos mutables del perfil.
// Email y rol son inmutables post-registro: no hay input para ellos.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.Organization != nil {
		u.Organization = strings.TrimSpace(*in.Organization)
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// SetAvatar guarda el path del avatar recién subido.
func (s *Service) SetAvatar(ctx context.Context, id, avatarPath string) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	u.AvatarPath = strings.TrimSpace(avatarPath)
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) CountByRole(ctx context.Context) (map[Role]int, error) {
	return s.repo.CountByRole(ctx)
}
