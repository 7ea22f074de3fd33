package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// SecurityConfig carries the numeric and timing parameters of the
// account security state machine.
type SecurityConfig struct {
	LockThreshold   int           // consecutive failures before lockout
	ResetTTL        time.Duration // reset token lifetime
	VerificationTTL time.Duration // verification token lifetime, double the reset TTL
	BaseURL         string        // prefix for links in outbound mail
}

// SecurityServiceImpl implements domain.SecurityService
type SecurityServiceImpl struct {
	accounts    domain.AccountRepository
	passwordSvc domain.PasswordService
	tokens      domain.TokenGenerator
	mailer      domain.Mailer
	config      SecurityConfig
	logger      *logrus.Logger
	now         func() time.Time
}

// NewSecurityService creates a new account security service
func NewSecurityService(
	accounts domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokens domain.TokenGenerator,
	mailer domain.Mailer,
	config SecurityConfig,
	logger *logrus.Logger,
) domain.SecurityService {
	return &SecurityServiceImpl{
		accounts:    accounts,
		passwordSvc: passwordSvc,
		tokens:      tokens,
		mailer:      mailer,
		config:      config,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register implements domain.SecurityService. New accounts start inactive
// and receive a verification link by mail.
func (s *SecurityServiceImpl) Register(ctx context.Context, input *domain.RegisterInput) (*domain.Account, error) {
	if input.Kind != domain.KindSeeker && input.Kind != domain.KindEmployer {
		return nil, fmt.Errorf("cannot register identity kind %q", input.Kind)
	}

	existing, err := s.accounts.FindByEmail(ctx, input.Kind, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrAccountExists
	}
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	account := &domain.Account{
		Email:         input.Email,
		Kind:          input.Kind,
		PasswordHash:  hash,
		Phone:         input.Phone,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Active:        false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := s.issueVerification(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// CredentialCheck implements domain.SecurityService.
//
// The failed-attempt increment is a read-modify-write without cross-item
// transactions; concurrent failures may undercount. The window is narrow
// and self-healing, accepted rather than serialized with locking.
func (s *SecurityServiceImpl) CredentialCheck(ctx context.Context, kind domain.IdentityKind, email, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Indistinguishable from a wrong password.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if !account.Active {
		// Re-issue the verification link on every attempt against an
		// unverified account.
		if issueErr := s.issueVerification(ctx, account); issueErr != nil {
			s.logger.WithField("email", account.Email).
				WithError(issueErr).Warn("failed to issue verification token")
		}
		return nil, domain.ErrAccountInactive
	}

	if account.Locked {
		// The password is deliberately not checked against a locked
		// account.
		return nil, domain.ErrAccountLocked
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		account.FailedAttempts++
		justLocked := account.FailedAttempts >= s.config.LockThreshold
		if justLocked {
			account.Locked = true
		}
		if err := s.accounts.UpdateLoginState(ctx, kind, account.Email, account.FailedAttempts, account.Locked); err != nil {
			s.logger.WithField("email", account.Email).
				WithError(err).Warn("failed to persist failed-attempt count")
		}
		if justLocked {
			s.logger.WithFields(logrus.Fields{
				"email": account.Email,
				"kind":  kind,
			}).Info("account locked after repeated failed logins")
			return nil, domain.ErrAccountLocked
		}
		return nil, domain.ErrInvalidCredentials
	}

	if account.FailedAttempts != 0 || account.Locked {
		account.FailedAttempts = 0
		account.Locked = false
		if err := s.accounts.UpdateLoginState(ctx, kind, account.Email, 0, false); err != nil {
			s.logger.WithField("email", account.Email).
				WithError(err).Warn("failed to reset failed-attempt count")
		}
	}
	return account, nil
}

// RequestReset implements domain.SecurityService. The unlock happens here,
// at token issuance, not at redemption: mailing the reset link is the
// mechanism by which a locked-out user regains access.
func (s *SecurityServiceImpl) RequestReset(ctx context.Context, kind domain.IdentityKind, email string) error {
	account, err := s.accounts.FindByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.config.ResetTTL)
	if err := s.accounts.SetResetToken(ctx, kind, account.Email, token, expiresAt); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	wasLocked := account.Locked
	if err := s.mailer.Send(account.Email, "Password Reset Request", resetMailBody(s.config.BaseURL, token, wasLocked)); err != nil {
		s.logger.WithField("email", account.Email).
			WithError(err).Error("failed to send reset email")
		return domain.ErrMailFailed
	}

	// Clear the lock and counter once the link is on its way.
	if err := s.accounts.SetLocked(ctx, kind, account.Email, false); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// RedeemReset implements domain.SecurityService
func (s *SecurityServiceImpl) RedeemReset(ctx context.Context, token, newPassword string) (string, error) {
	account, err := s.accounts.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if account.ResetTokenExpiresAt == nil || !s.now().Before(*account.ResetTokenExpiresAt) {
		return "", domain.ErrTokenExpired
	}

	if err := ValidatePassword(newPassword); err != nil {
		return "", err
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	wasLocked := account.Locked
	if err := s.accounts.UpdatePassword(ctx, account.Kind, account.Email, hash); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	message := "Password updated successfully."
	if wasLocked {
		message += " Your account has been unlocked."
	}
	return message, nil
}

// Verify implements domain.SecurityService
func (s *SecurityServiceImpl) Verify(ctx context.Context, token string) error {
	account, err := s.accounts.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrTokenNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if account.VerificationTokenExpiresAt == nil || !s.now().Before(*account.VerificationTokenExpiresAt) {
		return domain.ErrTokenExpired
	}

	if err := s.accounts.Activate(ctx, account.Kind, account.Email); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// SetLocked implements domain.SecurityService, the administrative toggle.
func (s *SecurityServiceImpl) SetLocked(ctx context.Context, kind domain.IdentityKind, email string, locked bool) error {
	if _, err := s.accounts.FindByEmail(ctx, kind, email); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := s.accounts.SetLocked(ctx, kind, email, locked); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// issueVerification mints a fresh verification token and mails the
// activation link.
func (s *SecurityServiceImpl) issueVerification(ctx context.Context, account *domain.Account) error {
	token, err := s.tokens.Generate()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.config.VerificationTTL)
	if err := s.accounts.SetVerificationToken(ctx, account.Kind, account.Email, token, expiresAt); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	body := fmt.Sprintf(`To activate your account, visit the following link:
%s/auth/verify/%s

If you did not create this account then simply ignore this email.
`, s.config.BaseURL, token)

	if err := s.mailer.Send(account.Email, "Verify Your Account", body); err != nil {
		s.logger.WithField("email", account.Email).
			WithError(err).Error("failed to send verification email")
		return domain.ErrMailFailed
	}
	return nil
}

func resetMailBody(baseURL, token string, wasLocked bool) string {
	unlock := ""
	if wasLocked {
		unlock = " and unlock your account"
	}
	return fmt.Sprintf(`To reset your password%s, visit the following link:
%s/auth/reset/%s

If you did not make this request then simply ignore this email and no changes will be made.
`, unlock, baseURL, token)
}

// ValidatePassword applies the four password strength checks in order;
// the first failing check wins.
func ValidatePassword(password string) error {
	if password == "" {
		return &domain.WeakPasswordError{Reason: domain.WeakPasswordEmpty}
	}
	if len(password) < 8 {
		return &domain.WeakPasswordError{Reason: domain.WeakPasswordLength}
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower {
		return &domain.WeakPasswordError{Reason: domain.WeakPasswordCase}
	}
	if !hasDigit || !hasSymbol {
		return &domain.WeakPasswordError{Reason: domain.WeakPasswordSymbols}
	}
	return nil
}
