package mocks

import (
	"context"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockTokenGenerator implements domain.TokenGenerator for testing
type MockTokenGenerator struct {
	GenerateFunc func() (string, error)
}

func NewMockTokenGenerator() *MockTokenGenerator {
	return &MockTokenGenerator{}
}

func (m *MockTokenGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "mock-token", nil
}

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	SendFunc func(to, subject, body string) error

	// Sent records every delivered mail when SendFunc is nil.
	Sent []MockMail
}

type MockMail struct {
	To      string
	Subject string
	Body    string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	m.Sent = append(m.Sent, MockMail{To: to, Subject: subject, Body: body})
	return nil
}

// MockSecurityService implements domain.SecurityService for testing
type MockSecurityService struct {
	RegisterFunc        func(ctx context.Context, input *domain.RegisterInput) (*domain.Account, error)
	CredentialCheckFunc func(ctx context.Context, kind domain.IdentityKind, email, password string) (*domain.Account, error)
	RequestResetFunc    func(ctx context.Context, kind domain.IdentityKind, email string) error
	RedeemResetFunc     func(ctx context.Context, token, newPassword string) (string, error)
	VerifyFunc          func(ctx context.Context, token string) error
	SetLockedFunc       func(ctx context.Context, kind domain.IdentityKind, email string, locked bool) error
}

func NewMockSecurityService() *MockSecurityService {
	return &MockSecurityService{}
}

func (m *MockSecurityService) Register(ctx context.Context, input *domain.RegisterInput) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.Account{Email: input.Email, Kind: input.Kind}, nil
}

func (m *MockSecurityService) CredentialCheck(ctx context.Context, kind domain.IdentityKind, email, password string) (*domain.Account, error) {
	if m.CredentialCheckFunc != nil {
		return m.CredentialCheckFunc(ctx, kind, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockSecurityService) RequestReset(ctx context.Context, kind domain.IdentityKind, email string) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, kind, email)
	}
	return nil
}

func (m *MockSecurityService) RedeemReset(ctx context.Context, token, newPassword string) (string, error) {
	if m.RedeemResetFunc != nil {
		return m.RedeemResetFunc(ctx, token, newPassword)
	}
	return "Password updated successfully.", nil
}

func (m *MockSecurityService) Verify(ctx context.Context, token string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil
}

func (m *MockSecurityService) SetLocked(ctx context.Context, kind domain.IdentityKind, email string, locked bool) error {
	if m.SetLockedFunc != nil {
		return m.SetLockedFunc(ctx, kind, email, locked)
	}
	return nil
}

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc  func(ctx context.Context, kind domain.IdentityKind, email, password string) (*domain.Session, *domain.Account, error)
	LogoutFunc func(ctx context.Context, sessionID string) error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, kind domain.IdentityKind, email, password string) (*domain.Session, *domain.Account, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, kind, email, password)
	}
	return nil, nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// MockChatService implements domain.ChatService for testing
type MockChatService struct {
	SendFunc         func(ctx context.Context, senderID string, senderKind domain.IdentityKind, receiverID, content, jobID string) (*domain.Message, error)
	ConversationFunc func(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error)
	MarkReadFunc     func(ctx context.Context, messageID string) error
	UnreadCountFunc  func(ctx context.Context, identityID string) (int, error)
	ThreadsFunc      func(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error)
}

func NewMockChatService() *MockChatService {
	return &MockChatService{}
}

func (m *MockChatService) Send(ctx context.Context, senderID string, senderKind domain.IdentityKind, receiverID, content, jobID string) (*domain.Message, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, senderID, senderKind, receiverID, content, jobID)
	}
	return &domain.Message{SenderID: senderID, SenderKind: senderKind, ReceiverID: receiverID, Content: content, JobID: jobID}, nil
}

func (m *MockChatService) Conversation(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error) {
	if m.ConversationFunc != nil {
		return m.ConversationFunc(ctx, identityA, identityB, jobID)
	}
	return nil, nil
}

func (m *MockChatService) MarkRead(ctx context.Context, messageID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, messageID)
	}
	return nil
}

func (m *MockChatService) UnreadCount(ctx context.Context, identityID string) (int, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx, identityID)
	}
	return 0, nil
}

func (m *MockChatService) Threads(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error) {
	if m.ThreadsFunc != nil {
		return m.ThreadsFunc(ctx, identityID)
	}
	return nil, nil
}
