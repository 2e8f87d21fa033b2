package http

import (
	nethttp "net/http"
	"sync"
)

// AuthMode selects which credential header is sent.
type AuthMode string

const (
	// AuthModeJWT sends Authorization: Bearer <token>.
	AuthModeJWT AuthMode = "jwt"
	// AuthModeAPIKey sends X-API-Key: <token>.
	AuthModeAPIKey AuthMode = "apiKey"
)

const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
)

// credentials is the single mutable piece of client state. Readers take a
// consistent {mode, token} pair so a request never carries both headers or neither.
type credentials struct {
	mu    sync.RWMutex
	mode  AuthMode
	token string
}

// newCredentials picks the initial mode. A JWT takes precedence over an API key.
func newCredentials(apiKey, jwtToken string) (*credentials, error) {
	switch {
	case jwtToken != "":
		return &credentials{mode: AuthModeJWT, token: jwtToken}, nil
	case apiKey != "":
		return &credentials{mode: AuthModeAPIKey, token: apiKey}, nil
	default:
		return nil, newError(AuthConfigError, "either an API key or a JWT token must be provided", nil)
	}
}

func (c *credentials) set(token string, mode AuthMode) error {
	if mode != AuthModeJWT && mode != AuthModeAPIKey {
		return newError(AuthConfigError, "unknown auth mode "+string(mode), nil)
	}
	if token == "" {
		return newError(AuthConfigError, "auth token must not be empty", nil)
	}
	c.mu.Lock()
	c.mode = mode
	c.token = token
	c.mu.Unlock()
	return nil
}

func (c *credentials) current() AuthMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// apply writes the active credential header and removes the other one.
func (c *credentials) apply(h nethttp.Header) {
	c.mu.RLock()
	mode, token := c.mode, c.token
	c.mu.RUnlock()

	if mode == AuthModeJWT {
		h.Del(HeaderAPIKey)
		h.Set(HeaderAuthorization, "Bearer "+token)
		return
	}
	h.Del(HeaderAuthorization)
	h.Set(HeaderAPIKey, token)
}
