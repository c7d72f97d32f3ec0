package session

import (
	"context"
	"errors"

	"github.com/sfvc/calendario-nodo/internal/apiclient"
)

// Store holds the authenticated user for one browser session, next to the
// token slot the API client reads on every outbound call. It is the explicit
// replacement for the ambient auth context + local storage pair of the old
// front end.
type Store struct {
	api    *apiclient.Client
	tokens apiclient.TokenStore
	user   *apiclient.User
}

func New(api *apiclient.Client, tokens apiclient.TokenStore) *Store {
	return &Store{api: api, tokens: tokens}
}

// Login posts the credentials; on success it persists token and user. On
// failure nothing is persisted and the API error propagates for UI display.
func (s *Store) Login(ctx context.Context, email, password string) error {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if user == nil || token == "" {
		return errors.New("respuesta de login incompleta: falta token o usuario")
	}
	s.tokens.SetToken(token)
	s.user = user
	return nil
}

// Logout clears persisted token and in-memory user, unconditionally.
func (s *Store) Logout() {
	s.tokens.Clear()
	s.user = nil
}

// CheckToken runs once at session mount: no stored token marks the session
// unauthenticated; a stored one is traded for a fresh token/user, and any
// refresh failure degrades to a logout. There is no retry and no background
// refresh timer.
func (s *Store) CheckToken(ctx context.Context) {
	if s.tokens.Token() == "" {
		s.user = nil
		return
	}
	user, token, err := s.api.Refresh(ctx)
	if err != nil {
		s.Logout()
		return
	}
	s.user = user
	if token != "" {
		s.tokens.SetToken(token)
	}
}

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *apiclient.User {
	return s.user
}

func (s *Store) IsAuthenticated() bool {
	return s.user != nil && s.tokens.Token() != ""
}

// IsAdmin reports whether the current user carries the ADMIN role.
func (s *Store) IsAdmin() bool {
	return s.user != nil && s.user.Role == "ADMIN"
}
