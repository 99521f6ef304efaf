// Package supabase implementa los ports de auth y verificación contra la
// API REST de GoTrue (el proveedor de identidad del proyecto Supabase).
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vetco/internal/platform/httpclient"
	"vetco/internal/ports/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Client habla con los endpoints /auth/v1/* usando el anon key del proyecto.
// Cada operación es una sola llamada; sin retries.
type Client struct {
	http    *httpclient.Client
	anonKey string
}

func New(projectURL, anonKey string) (*Client, error) {
	if strings.TrimSpace(projectURL) == "" {
		return nil, errors.New("supabase: project URL is required")
	}
	if strings.TrimSpace(anonKey) == "" {
		return nil, errors.New("supabase: anon key is required")
	}

	hc, err := httpclient.New(projectURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}
	return &Client{http: hc, anonKey: anonKey}, nil
}

func (c *Client) headers(bearer string) map[string]string {
	h := map[string]string{"apikey": c.anonKey}
	if bearer == "" {
		bearer = c.anonKey
	}
	h["Authorization"] = "Bearer " + bearer
	return h
}

// Formas de respuesta de GoTrue. Solo los campos que consumimos.
type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int        `json:"expires_in"`
	User         gotrueUser `json:"user"`
}

// signUpResponse: con confirmación de email activa GoTrue devuelve solo el
// user, sin sesión; ambas formas se aceptan.
type signUpResponse struct {
	gotrueSession
	gotrueUser
}

func (c *Client) SignUp(ctx context.Context, in auth.SignUpInput) (auth.Session, error) {
	body := map[string]any{
		"email":    in.Email,
		"password": in.Password,
	}
	if len(in.Metadata) > 0 {
		data := make(map[string]any, len(in.Metadata))
		for k, v := range in.Metadata {
			data[k] = v
		}
		body["data"] = data
	}

	var resp signUpResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/signup", c.headers(""), body, &resp); err != nil {
		return auth.Session{}, fmt.Errorf("supabase: sign-up: %w", err)
	}

	sess := auth.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
	}
	if sess.UserID == "" {
		sess.UserID = resp.gotrueUser.ID
		sess.Email = resp.gotrueUser.Email
	}
	if sess.UserID == "" {
		return auth.Session{}, errors.New("supabase: sign-up response without user id")
	}
	return sess, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp gotrueSession
	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.headers(""), body, &resp)
	if err != nil {
		var herr *httpclient.HTTPError
		if errors.As(err, &herr) && (herr.StatusCode == http.StatusBadRequest || herr.StatusCode == http.StatusUnauthorized) {
			return auth.Session{}, ErrInvalidCredentials
		}
		return auth.Session{}, fmt.Errorf("supabase: sign-in: %w", err)
	}

	return auth.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
	}, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", c.headers(token), nil, nil); err != nil {
		return fmt.Errorf("supabase: sign-out: %w", err)
	}
	return nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/recover", c.headers(""), body, nil); err != nil {
		return fmt.Errorf("supabase: password recover: %w", err)
	}
	return nil
}

// UpdatePassword cambia la password del usuario dueño del token (el token
// de recovery que llega en el link del mail sirve acá).
func (c *Client) UpdatePassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"password": newPassword}
	if err := c.http.DoJSON(ctx, http.MethodPut, "/auth/v1/user", c.headers(token), body, nil); err != nil {
		return fmt.Errorf("supabase: update password: %w", err)
	}
	return nil
}

var _ auth.Authenticator = (*Client)(nil)
