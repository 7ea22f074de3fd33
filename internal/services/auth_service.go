package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	security domain.SecurityService
	sessions domain.SessionStore
	logger   *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(security domain.SecurityService, sessions domain.SessionStore, logger *logrus.Logger) domain.AuthService {
	return &AuthServiceImpl{
		security: security,
		sessions: sessions,
		logger:   logger,
	}
}

// Login implements domain.AuthService. A successful credential check
// mints a session, which retires any prior session for the identity.
func (s *AuthServiceImpl) Login(ctx context.Context, kind domain.IdentityKind, email, password string) (*domain.Session, *domain.Account, error) {
	account, err := s.security.CredentialCheck(ctx, kind, email, password)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Create(ctx, account.Email, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Stash the display name in the session bag so later requests can
	// render it without an account lookup.
	data := map[string]string{"display_name": account.DisplayName()}
	if err := s.sessions.UpdateData(ctx, session.ID, data); err != nil {
		s.logger.WithField("session_id", session.ID).
			WithError(err).Warn("failed to store session data")
	} else {
		session.Data = data
	}

	s.logger.WithFields(logrus.Fields{
		"identity_id": account.Email,
		"kind":        kind,
		"session_id":  session.ID,
	}).Info("login succeeded")

	return session, account, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}
