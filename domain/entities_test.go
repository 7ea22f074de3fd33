package domain

import (
	"testing"
	"time"
)

func TestIdentityKind_Valid(t *testing.T) {
	tests := []struct {
		name  string
		kind  IdentityKind
		valid bool
	}{
		{name: "seeker", kind: KindSeeker, valid: true},
		{name: "employer", kind: KindEmployer, valid: true},
		{name: "admin", kind: KindAdmin, valid: true},
		{name: "empty", kind: IdentityKind(""), valid: false},
		{name: "unknown", kind: IdentityKind("recruiter"), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestAccount_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		account *Account
		want    string
	}{
		{
			name: "employer uses company name",
			account: &Account{
				Kind:        KindEmployer,
				Email:       "jobs@acme.example",
				CompanyName: "Acme Pty Ltd",
			},
			want: "Acme Pty Ltd",
		},
		{
			name: "seeker uses first and last name",
			account: &Account{
				Kind:      KindSeeker,
				Email:     "jane@example.com",
				FirstName: "Jane",
				LastName:  "Doe",
			},
			want: "Jane Doe",
		},
		{
			name: "falls back to email",
			account: &Account{
				Kind:  KindAdmin,
				Email: "admin@example.com",
			},
			want: "admin@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expired   bool
	}{
		{name: "future expiry", expiresAt: now.Add(time.Hour), expired: false},
		{name: "exact boundary is still valid", expiresAt: now, expired: false},
		{name: "past expiry", expiresAt: now.Add(-time.Second), expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ID: "sess", ExpiresAt: tt.expiresAt}
			if got := s.Expired(now); got != tt.expired {
				t.Errorf("Expired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestMessage_ConversationKey(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want string
	}{
		{
			name: "job scoped conversation",
			msg:  &Message{SenderID: "u1", JobID: "j1"},
			want: "u1_j1",
		},
		{
			name: "general conversation",
			msg:  &Message{SenderID: "e1"},
			want: "e1_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.ConversationKey(); got != tt.want {
				t.Errorf("ConversationKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
