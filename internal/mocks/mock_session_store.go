package mocks

import (
	"context"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// MockSessionStore implements domain.SessionStore for testing
type MockSessionStore struct {
	CreateFunc        func(ctx context.Context, identityID string, kind domain.IdentityKind) (*domain.Session, error)
	ValidateFunc      func(ctx context.Context, sessionID string) (*domain.Session, error)
	RevokeFunc        func(ctx context.Context, sessionID string) error
	UpdateDataFunc    func(ctx context.Context, sessionID string, data map[string]string) error
	DeleteExpiredFunc func(ctx context.Context) error
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

func (m *MockSessionStore) Create(ctx context.Context, identityID string, kind domain.IdentityKind) (*domain.Session, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, identityID, kind)
	}
	return &domain.Session{ID: "sess_mock", IdentityID: identityID, IdentityKind: kind}, nil
}

func (m *MockSessionStore) Validate(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionStore) Revoke(ctx context.Context, sessionID string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSessionStore) UpdateData(ctx context.Context, sessionID string, data map[string]string) error {
	if m.UpdateDataFunc != nil {
		return m.UpdateDataFunc(ctx, sessionID, data)
	}
	return nil
}

func (m *MockSessionStore) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return nil
}
