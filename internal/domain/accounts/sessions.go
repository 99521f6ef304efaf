package accounts

import (
	"context"
	"sync"
	"time"

	"vetco/internal/ports/auth"
)

const defaultSessionTTL = 5 * time.Minute

// SessionCache es el cache de sesiones único por proceso: evita re-verificar
// el token contra GoTrue en cada navegación. Se invalida en sign-in/sign-out.
type SessionCache struct {
	verifier auth.AuthVerifier
	ttl      time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]sessionEntry
}

type sessionEntry struct {
	claims    auth.Claims
	expiresAt time.Time
}

func NewSessionCache(verifier auth.AuthVerifier) *SessionCache {
	return &SessionCache{
		verifier: verifier,
		ttl:      defaultSessionTTL,
		now:      time.Now,
		entries:  make(map[string]sessionEntry),
	}
}

// Resolve devuelve los claims para un token. Cache hit => sin red.
// Miss o vencido => verifica upstream; un fallo upstream es "no autenticado",
// nunca un error hacia el caller.
func (c *SessionCache) Resolve(ctx context.Context, token string) (auth.Claims, bool) {
	if token == "" {
		return auth.Claims{}, false
	}

	c.mu.RLock()
	e, ok := c.entries[token]
	c.mu.RUnlock()

	if ok && c.now().Before(e.expiresAt) {
		return e.claims, true
	}

	claims, err := c.verifier.Verify(ctx, token)
	if err != nil {
		c.Invalidate(token)
		return auth.Claims{}, false
	}

	c.Put(token, claims)
	return claims, true
}

// Put registra la sesión (se llama al hacer sign-in). Nil-safe: en modo
// dev no hay cache y la llamada es un no-op.
func (c *SessionCache) Put(token string, claims auth.Claims) {
	if c == nil || token == "" {
		return
	}
	c.mu.Lock()
	c.entries[token] = sessionEntry{claims: claims, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate borra la sesión (sign-out o token rechazado).
func (c *SessionCache) Invalidate(token string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, token)
	c.mu.Unlock()
}
