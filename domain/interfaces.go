package domain

import (
	"context"
	"time"
)

// AccountRepository defines account data access operations. Accounts are
// keyed by (kind, lowercased email) and are never physically deleted here.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, kind IdentityKind, email string) (*Account, error)
	// FindByResetToken scans every kind for the identity holding the token.
	FindByResetToken(ctx context.Context, token string) (*Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*Account, error)
	// UpdateLoginState persists the failed-attempt counter and lock flag.
	UpdateLoginState(ctx context.Context, kind IdentityKind, email string, failedAttempts int, locked bool) error
	SetResetToken(ctx context.Context, kind IdentityKind, email, token string, expiresAt time.Time) error
	SetVerificationToken(ctx context.Context, kind IdentityKind, email, token string, expiresAt time.Time) error
	// UpdatePassword installs a new hash and clears the reset token pair,
	// the failed-attempt counter, and the lock.
	UpdatePassword(ctx context.Context, kind IdentityKind, email, passwordHash string) error
	// Activate flips the account active and clears the verification pair.
	Activate(ctx context.Context, kind IdentityKind, email string) error
	SetLocked(ctx context.Context, kind IdentityKind, email string, locked bool) error
}

// SessionStore issues, validates, and revokes opaque session tokens.
type SessionStore interface {
	// Create retires every existing session for (identityID, kind) before
	// inserting the new one. Retirement is best-effort: a failure is logged,
	// not fatal.
	Create(ctx context.Context, identityID string, kind IdentityKind) (*Session, error)
	// Validate resolves a token to its session, lazily deleting it when the
	// TTL has passed. Returns ErrSessionNotFound or ErrSessionExpired.
	Validate(ctx context.Context, sessionID string) (*Session, error)
	// Revoke deletes the session. Idempotent.
	Revoke(ctx context.Context, sessionID string) error
	// UpdateData replaces the opaque data bag on a live session.
	UpdateData(ctx context.Context, sessionID string, data map[string]string) error
	// DeleteExpired sweeps sessions whose TTL has passed.
	DeleteExpired(ctx context.Context) error
}

// MessageRepository persists chat messages and reconstructs conversations.
type MessageRepository interface {
	Insert(ctx context.Context, msg *Message) error
	// Conversation returns every message between the pair, optionally
	// narrowed to jobID, ascending by timestamp then message ID.
	Conversation(ctx context.Context, identityA, identityB, jobID string) ([]*Message, error)
	// MarkRead performs the one-way false->true read transition. No-op if
	// the message is already read.
	MarkRead(ctx context.Context, messageID string) error
	UnreadCount(ctx context.Context, identityID string) (int, error)
	// Since returns every message the identity sent or received strictly
	// after the checkpoint, ascending by timestamp then message ID. The
	// scan pages until exhausted; results are never silently truncated.
	Since(ctx context.Context, identityID string, checkpoint time.Time) ([]*Message, error)
	// Threads returns latest-first conversation summaries for the identity.
	Threads(ctx context.Context, identityID string) ([]*ConversationSummary, error)
}

// SecurityService is the per-account security state machine: failed-attempt
// counting, lockout, and token-gated unlock and verification flows.
type SecurityService interface {
	Register(ctx context.Context, input *RegisterInput) (*Account, error)
	// CredentialCheck verifies a password against the account state machine.
	// A success resets the failed-attempt counter and clears the lock.
	CredentialCheck(ctx context.Context, kind IdentityKind, email, password string) (*Account, error)
	// RequestReset issues a fresh reset token and clears the lock at
	// issuance time. This is how a locked-out user regains access.
	RequestReset(ctx context.Context, kind IdentityKind, email string) error
	// RedeemReset validates the token and password strength, then installs
	// the new password hash. Returns a user-facing confirmation message.
	RedeemReset(ctx context.Context, token, newPassword string) (string, error)
	// Verify activates an inactive account holding an unexpired
	// verification token.
	Verify(ctx context.Context, token string) error
	SetLocked(ctx context.Context, kind IdentityKind, email string, locked bool) error
}

// AuthService orchestrates login and logout on top of the security state
// machine and the session store.
type AuthService interface {
	Login(ctx context.Context, kind IdentityKind, email, password string) (*Session, *Account, error)
	Logout(ctx context.Context, sessionID string) error
}

// ChatService exposes conversation and message operations to handlers.
type ChatService interface {
	Send(ctx context.Context, senderID string, senderKind IdentityKind, receiverID, content, jobID string) (*Message, error)
	Conversation(ctx context.Context, identityA, identityB, jobID string) ([]*Message, error)
	MarkRead(ctx context.Context, messageID string) error
	UnreadCount(ctx context.Context, identityID string) (int, error)
	Threads(ctx context.Context, identityID string) ([]*ConversationSummary, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenGenerator mints random URL-safe tokens for reset and verification
// links.
type TokenGenerator interface {
	Generate() (string, error)
}

// Mailer is the external mail collaborator.
type Mailer interface {
	Send(to, subject, body string) error
}
