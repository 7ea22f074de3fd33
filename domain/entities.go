package domain

import "time"

// IdentityKind distinguishes the three disjoint account spaces.
type IdentityKind string

const (
	KindSeeker   IdentityKind = "seeker"
	KindEmployer IdentityKind = "employer"
	KindAdmin    IdentityKind = "admin"
)

// Valid reports whether k is one of the known identity kinds.
func (k IdentityKind) Valid() bool {
	switch k {
	case KindSeeker, KindEmployer, KindAdmin:
		return true
	}
	return false
}

// Account represents a job seeker, employer, or administrator identity.
// Email doubles as the primary key within each kind.
type Account struct {
	Email        string
	Kind         IdentityKind
	PasswordHash string
	Phone        string

	// Seeker profile fields.
	FirstName string
	LastName  string

	// Employer profile fields.
	CompanyName   string
	ContactPerson string

	FailedAttempts int
	Locked         bool
	Active         bool

	ResetToken          string
	ResetTokenExpiresAt *time.Time

	VerificationToken          string
	VerificationTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the human-facing name for the account.
func (a *Account) DisplayName() string {
	if a.Kind == KindEmployer && a.CompanyName != "" {
		return a.CompanyName
	}
	if a.FirstName != "" || a.LastName != "" {
		return a.FirstName + " " + a.LastName
	}
	return a.Email
}

// Session maps an opaque token to an authenticated identity. At most one
// live session exists per (IdentityID, IdentityKind) pair.
type Session struct {
	ID           string
	IdentityID   string
	IdentityKind IdentityKind
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Data         map[string]string
}

// Expired reports whether the session has passed its TTL at instant now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Message is a single chat message between a seeker and an employer.
// Immutable once stored except for the one-way IsRead transition.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	SenderKind IdentityKind
	Content    string
	SentAt     time.Time
	IsRead     bool
	JobID      string // empty means a general (non job-scoped) conversation
}

// ConversationKey identifies the thread a message belongs to on the wire.
func (m *Message) ConversationKey() string {
	return m.SenderID + "_" + m.JobID
}

// ConversationSummary is a derived latest-first view of one thread, used
// by the conversation list page.
type ConversationSummary struct {
	CounterpartID   string
	CounterpartKind IdentityKind
	JobID           string
	LastMessage     *Message
	UnreadCount     int
}

// RegisterInput carries the fields needed to create a new account.
type RegisterInput struct {
	Kind          IdentityKind
	Email         string
	Password      string
	Phone         string
	FirstName     string
	LastName      string
	CompanyName   string
	ContactPerson string
}
