package mocks

import (
	"context"
	"time"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing
type MockAccountRepository struct {
	CreateFunc                  func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc             func(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Account, error)
	FindByResetTokenFunc        func(ctx context.Context, token string) (*domain.Account, error)
	FindByVerificationTokenFunc func(ctx context.Context, token string) (*domain.Account, error)
	UpdateLoginStateFunc        func(ctx context.Context, kind domain.IdentityKind, email string, failedAttempts int, locked bool) error
	SetResetTokenFunc           func(ctx context.Context, kind domain.IdentityKind, email, token string, expiresAt time.Time) error
	SetVerificationTokenFunc    func(ctx context.Context, kind domain.IdentityKind, email, token string, expiresAt time.Time) error
	UpdatePasswordFunc          func(ctx context.Context, kind domain.IdentityKind, email, passwordHash string) error
	ActivateFunc                func(ctx context.Context, kind domain.IdentityKind, email string) error
	SetLockedFunc               func(ctx context.Context, kind domain.IdentityKind, email string, locked bool) error
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, kind, email)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, token)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	if m.FindByVerificationTokenFunc != nil {
		return m.FindByVerificationTokenFunc(ctx, token)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateLoginState(ctx context.Context, kind domain.IdentityKind, email string, failedAttempts int, locked bool) error {
	if m.UpdateLoginStateFunc != nil {
		return m.UpdateLoginStateFunc(ctx, kind, email, failedAttempts, locked)
	}
	return nil
}

func (m *MockAccountRepository) SetResetToken(ctx context.Context, kind domain.IdentityKind, email, token string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, kind, email, token, expiresAt)
	}
	return nil
}

func (m *MockAccountRepository) SetVerificationToken(ctx context.Context, kind domain.IdentityKind, email, token string, expiresAt time.Time) error {
	if m.SetVerificationTokenFunc != nil {
		return m.SetVerificationTokenFunc(ctx, kind, email, token, expiresAt)
	}
	return nil
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, kind domain.IdentityKind, email, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, kind, email, passwordHash)
	}
	return nil
}

func (m *MockAccountRepository) Activate(ctx context.Context, kind domain.IdentityKind, email string) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, kind, email)
	}
	return nil
}

func (m *MockAccountRepository) SetLocked(ctx context.Context, kind domain.IdentityKind, email string, locked bool) error {
	if m.SetLockedFunc != nil {
		return m.SetLockedFunc(ctx, kind, email, locked)
	}
	return nil
}
