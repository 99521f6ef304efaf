package auth

import "context"

// AuthVerifier verifica un access token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Authenticator expone las operaciones de cuenta contra el proveedor
// de identidad remoto (GoTrue). Sin retries: un fallo se reporta tal cual.
type Authenticator interface {
	SignUp(ctx context.Context, in SignUpInput) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, token, newPassword string) error
}
