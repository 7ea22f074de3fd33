package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

const (
	sessionPrefix = "session:"
	// ownerPrefix maps (kind, identity) to its single live session ID,
	// which is how Create finds prior sessions to retire.
	ownerPrefix = "session_owner:"
)

// SessionRepositoryImpl implements domain.SessionStore using Redis
type SessionRepositoryImpl struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

// NewSessionRepository creates a new session store with a fixed TTL.
func NewSessionRepository(client *redis.Client, ttl time.Duration, logger *logrus.Logger) domain.SessionStore {
	return &SessionRepositoryImpl{
		client: client,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func sessionKey(id string) string { return sessionPrefix + id }

func ownerKey(kind domain.IdentityKind, identityID string) string {
	return fmt.Sprintf("%s%s:%s", ownerPrefix, kind, identityID)
}

// Create implements domain.SessionStore. Any prior session for the
// identity is retired first; a retirement failure is logged and the new
// session is created anyway. Until the stale session's own TTL lapses it
// remains a second valid credential, an accepted bounded trade-off.
func (r *SessionRepositoryImpl) Create(ctx context.Context, identityID string, kind domain.IdentityKind) (*domain.Session, error) {
	owner := ownerKey(kind, identityID)

	prior, err := r.client.Get(ctx, owner).Result()
	if err == nil && prior != "" {
		if delErr := r.client.Del(ctx, sessionKey(prior)).Err(); delErr != nil {
			r.logger.WithFields(logrus.Fields{
				"identity_id": identityID,
				"session_id":  prior,
			}).WithError(delErr).Warn("failed to retire prior session")
		}
	} else if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.WithField("identity_id", identityID).
			WithError(err).Warn("failed to look up prior session")
	}

	now := r.now()
	session := &domain.Session{
		ID:           uuid.NewString(),
		IdentityID:   identityID,
		IdentityKind: kind,
		CreatedAt:    now,
		ExpiresAt:    now.Add(r.ttl),
		Data:         map[string]string{},
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := r.client.Set(ctx, owner, session.ID, r.ttl).Err(); err != nil {
		r.logger.WithField("session_id", session.ID).
			WithError(err).Warn("failed to index session owner")
	}

	return session, nil
}

// Validate implements domain.SessionStore with lazy expiry: an expired
// session is deleted on read.
func (r *SessionRepositoryImpl) Validate(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := r.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Expired(r.now()) {
		r.deleteSession(ctx, session)
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// Revoke implements domain.SessionStore. Idempotent.
func (r *SessionRepositoryImpl) Revoke(ctx context.Context, sessionID string) error {
	session, err := r.load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	r.deleteSession(ctx, session)
	return nil
}

// UpdateData implements domain.SessionStore, replacing the opaque data
// bag while preserving the original expiry.
func (r *SessionRepositoryImpl) UpdateData(ctx context.Context, sessionID string, data map[string]string) error {
	session, err := r.Validate(ctx, sessionID)
	if err != nil {
		return err
	}

	session.Data = data
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	remaining := session.ExpiresAt.Sub(r.now())
	if err := r.client.Set(ctx, sessionKey(sessionID), raw, remaining).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired implements domain.SessionStore: a sweep over every stored
// session deleting those past their TTL. Redis key expiry already covers
// the normal case; the sweep keeps the store contract honest when TTLs
// and expires_at drift.
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, sessionPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := r.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		var session domain.Session
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			continue
		}
		if session.Expired(r.now()) {
			r.deleteSession(ctx, &session)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SessionRepositoryImpl) load(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepositoryImpl) deleteSession(ctx context.Context, session *domain.Session) {
	if err := r.client.Del(ctx, sessionKey(session.ID)).Err(); err != nil {
		r.logger.WithField("session_id", session.ID).
			WithError(err).Warn("failed to delete session")
	}

	owner := ownerKey(session.IdentityKind, session.IdentityID)
	current, err := r.client.Get(ctx, owner).Result()
	if err == nil && current == session.ID {
		if err := r.client.Del(ctx, owner).Err(); err != nil {
			r.logger.WithField("session_id", session.ID).
				WithError(err).Warn("failed to delete session owner index")
		}
	}
}
