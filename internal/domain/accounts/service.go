package accounts

import (
	"context"
	"errors"
	"strings"

	"vetco/internal/domain/users"
	"vetco/internal/ports/auth"
)

var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters long")
	ErrInvalidInput     = errors.New("invalid input")

	// ErrAuthUnavailable se devuelve cuando el servicio arrancó sin proveedor
	// de identidad (modo dev sin SUPABASE_URL). Las operaciones de cuenta que
	// requieren el proveedor remoto fallan limpio en vez de hacer panic.
	ErrAuthUnavailable = errors.New("remote auth is not configured")
)

const minPasswordLen = 8

// Service orquesta registro, login y sign-out contra el proveedor de
// identidad remoto, más la fila espejo de perfil en users.
type Service struct {
	auth     auth.Authenticator
	users    *users.Service
	sessions *SessionCache
}

func NewService(authn auth.Authenticator, usersSvc *users.Service, sessions *SessionCache) *Service {
	return &Service{
		auth:     authn,
		users:    usersSvc,
		sessions: sessions,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Role            string
	Phone           string
}

// Register valida localmente (match + largo de password) ANTES de tocar la
// red; recién después hace sign-up en GoTrue e inserta el perfil.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return users.User{}, ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return users.User{}, ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLen {
		return users.User{}, ErrPasswordTooShort
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(users.RoleFarmer)
	}
	if !users.Role(role).Valid() {
		return users.User{}, ErrInvalidInput
	}
	if s.auth == nil {
		return users.User{}, ErrAuthUnavailable
	}

	sess, err := s.auth.SignUp(ctx, auth.SignUpInput{
		Email:    email,
		Password: in.Password,
		Metadata: map[string]string{
			"full_name": strings.TrimSpace(in.FullName),
			"role":      role,
			"phone":     strings.TrimSpace(in.Phone),
		},
	})
	if err != nil {
		return users.User{}, err
	}

	return s.users.Create(ctx, users.CreateInput{
		ID:       sess.UserID,
		Email:    email,
		FullName: in.FullName,
		Role:     role,
		Phone:    in.Phone,
	})
}

// Login hace el password sign-in y registra la sesión en el cache.
func (s *Service) Login(ctx context.Context, email, password string) (auth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Session{}, ErrInvalidInput
	}
	if s.auth == nil {
		return auth.Session{}, ErrAuthUnavailable
	}

	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return auth.Session{}, err
	}

	s.sessions.Put(sess.AccessToken, auth.Claims{UserID: sess.UserID, Email: sess.Email})
	return sess, nil
}

// Logout revoca upstream e invalida el cache. La revocación remota es
// best-effort: el cache local se invalida siempre.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	s.sessions.Invalidate(token)
	if s.auth == nil {
		return nil
	}
	return s.auth.SignOut(ctx, token)
}

// RequestPasswordReset dispara el mail de recuperación.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidInput
	}
	if s.auth == nil {
		return ErrAuthUnavailable
	}
	return s.auth.SendPasswordReset(ctx, email)
}

// ResetPassword cambia la password usando el token de la sesión de
// recuperación. Mismas validaciones locales que el registro.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if s.auth == nil {
		return ErrAuthUnavailable
	}
	return s.auth.UpdatePassword(ctx, token, password)
}
