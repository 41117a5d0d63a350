package store

import (
	"errors"
	"sync"

	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
)

type session struct {
	mu      sync.RWMutex
	user    *models.User
	loading bool
	err     string
}

func (s *session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	s.err = ""
}

func (s *session) end(err error, failure string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.err = failureMessage(err, failure)
	}
}

func (s *session) authenticate(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
}

func (s *session) snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Session{
		IsAuthenticated: s.user != nil,
		Loading:         s.loading,
		Error:           s.err,
	}
	if s.user != nil {
		view := s.user.View()
		snap.CurrentUser = &view
	}

	return snap
}

// failureMessage keeps the user-facing text of reset-flow errors.
func failureMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, custom_error.ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, custom_error.ErrUnknownAccount) && fallback == resetFailure:
		return "No account found with this email"
	default:
		return fallback
	}
}

func (s *Store) Session() models.Session {
	return s.session.snapshot()
}

// Logout clears the session unconditionally.
func (s *Store) Logout() {
	s.session.clear()
}
