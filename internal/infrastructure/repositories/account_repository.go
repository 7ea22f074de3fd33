package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/records"
)

// One collection per identity kind, the table-per-kind layout of the
// original document store.
var accountCollections = map[domain.IdentityKind]string{
	domain.KindSeeker:   "seekers",
	domain.KindEmployer: "employers",
	domain.KindAdmin:    "admins",
}

// accountDoc is the stored shape of a domain.Account. The lowercased
// email is the primary key within its collection.
type accountDoc struct {
	Email         string `bson:"_id"`
	PasswordHash  string `bson:"password_hash"`
	Phone         string `bson:"phone,omitempty"`
	FirstName     string `bson:"first_name,omitempty"`
	LastName      string `bson:"last_name,omitempty"`
	CompanyName   string `bson:"company_name,omitempty"`
	ContactPerson string `bson:"contact_person,omitempty"`

	FailedAttempts int  `bson:"failed_attempts"`
	Locked         bool `bson:"locked"`
	Active         bool `bson:"active"`

	ResetToken          string     `bson:"reset_token,omitempty"`
	ResetTokenExpiresAt *time.Time `bson:"reset_token_expires_at,omitempty"`

	VerificationToken          string     `bson:"verification_token,omitempty"`
	VerificationTokenExpiresAt *time.Time `bson:"verification_token_expires_at,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// AccountRepositoryImpl implements domain.AccountRepository on the record
// store.
type AccountRepositoryImpl struct {
	store *records.Store
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(store *records.Store) domain.AccountRepository {
	return &AccountRepositoryImpl{store: store}
}

func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	collection, err := collectionFor(account.Kind)
	if err != nil {
		return err
	}
	account.Email = canonicalEmail(account.Email)
	doc := domainToDoc(account)
	return r.store.Put(ctx, collection, bson.M{"_id": doc.Email}, doc)
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Account, error) {
	collection, err := collectionFor(kind)
	if err != nil {
		return nil, err
	}

	var doc accountDoc
	err = r.store.Get(ctx, collection, bson.M{"_id": canonicalEmail(email)}, &doc)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return docToDomain(&doc, kind), nil
}

// FindByResetToken implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.findByToken(ctx, "reset_token", token)
}

// FindByVerificationToken implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.findByToken(ctx, "verification_token", token)
}

// findByToken scans every kind for the account holding the token. Tokens
// are globally unique so the first hit wins.
func (r *AccountRepositoryImpl) findByToken(ctx context.Context, field, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrAccountNotFound
	}
	for _, kind := range []domain.IdentityKind{domain.KindSeeker, domain.KindEmployer, domain.KindAdmin} {
		collection := accountCollections[kind]

		var docs []accountDoc
		if err := r.store.Scan(ctx, collection, bson.M{field: token}, &docs); err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			return docToDomain(&docs[0], kind), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// UpdateLoginState implements domain.AccountRepository
func (r *AccountRepositoryImpl) UpdateLoginState(ctx context.Context, kind domain.IdentityKind, email string, failedAttempts int, locked bool) error {
	return r.update(ctx, kind, email, bson.M{
		"failed_attempts": failedAttempts,
		"locked":          locked,
	})
}

// SetResetToken implements domain.AccountRepository
func (r *AccountRepositoryImpl) SetResetToken(ctx context.Context, kind domain.IdentityKind, email, token string, expiresAt time.Time) error {
	return r.update(ctx, kind, email, bson.M{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	})
}

// SetVerificationToken implements domain.AccountRepository
func (r *AccountRepositoryImpl) SetVerificationToken(ctx context.Context, kind domain.IdentityKind, email, token string, expiresAt time.Time) error {
	return r.update(ctx, kind, email, bson.M{
		"verification_token":            token,
		"verification_token_expires_at": expiresAt,
	})
}

// UpdatePassword implements domain.AccountRepository
func (r *AccountRepositoryImpl) UpdatePassword(ctx context.Context, kind domain.IdentityKind, email, passwordHash string) error {
	return r.update(ctx, kind, email, bson.M{
		"password_hash":          passwordHash,
		"reset_token":            "",
		"reset_token_expires_at": nil,
		"failed_attempts":        0,
		"locked":                 false,
	})
}

// Activate implements domain.AccountRepository
func (r *AccountRepositoryImpl) Activate(ctx context.Context, kind domain.IdentityKind, email string) error {
	return r.update(ctx, kind, email, bson.M{
		"active":                        true,
		"verification_token":            "",
		"verification_token_expires_at": nil,
	})
}

// SetLocked implements domain.AccountRepository
func (r *AccountRepositoryImpl) SetLocked(ctx context.Context, kind domain.IdentityKind, email string, locked bool) error {
	fields := bson.M{"locked": locked}
	if !locked {
		fields["failed_attempts"] = 0
	}
	return r.update(ctx, kind, email, fields)
}

func (r *AccountRepositoryImpl) update(ctx context.Context, kind domain.IdentityKind, email string, fields bson.M) error {
	collection, err := collectionFor(kind)
	if err != nil {
		return err
	}
	fields["updated_at"] = time.Now().UTC()
	return r.store.Update(ctx, collection, bson.M{"_id": canonicalEmail(email)}, fields)
}

func collectionFor(kind domain.IdentityKind) (string, error) {
	collection, ok := accountCollections[kind]
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	return collection, nil
}

func domainToDoc(account *domain.Account) *accountDoc {
	return &accountDoc{
		Email:                      account.Email,
		PasswordHash:               account.PasswordHash,
		Phone:                      account.Phone,
		FirstName:                  account.FirstName,
		LastName:                   account.LastName,
		CompanyName:                account.CompanyName,
		ContactPerson:              account.ContactPerson,
		FailedAttempts:             account.FailedAttempts,
		Locked:                     account.Locked,
		Active:                     account.Active,
		ResetToken:                 account.ResetToken,
		ResetTokenExpiresAt:        account.ResetTokenExpiresAt,
		VerificationToken:          account.VerificationToken,
		VerificationTokenExpiresAt: account.VerificationTokenExpiresAt,
		CreatedAt:                  account.CreatedAt,
		UpdatedAt:                  account.UpdatedAt,
	}
}

func docToDomain(doc *accountDoc, kind domain.IdentityKind) *domain.Account {
	return &domain.Account{
		Email:                      doc.Email,
		Kind:                       kind,
		PasswordHash:               doc.PasswordHash,
		Phone:                      doc.Phone,
		FirstName:                  doc.FirstName,
		LastName:                   doc.LastName,
		CompanyName:                doc.CompanyName,
		ContactPerson:              doc.ContactPerson,
		FailedAttempts:             doc.FailedAttempts,
		Locked:                     doc.Locked,
		Active:                     doc.Active,
		ResetToken:                 doc.ResetToken,
		ResetTokenExpiresAt:        doc.ResetTokenExpiresAt,
		VerificationToken:          doc.VerificationToken,
		VerificationTokenExpiresAt: doc.VerificationTokenExpiresAt,
		CreatedAt:                  doc.CreatedAt,
		UpdatedAt:                  doc.UpdatedAt,
	}
}
