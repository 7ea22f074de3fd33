package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc     domain.AuthService
	securitySvc domain.SecurityService
	sessions    domain.SessionStore
	logger      *logrus.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, securitySvc domain.SecurityService, sessions domain.SessionStore, logger *logrus.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:     authSvc,
		securitySvc: securitySvc,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Kind          string `json:"kind" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Phone         string `json:"phone,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetRequestRequest asks for a password reset link
type ResetRequestRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// ResetRedeemRequest redeems a reset token for a new password
type ResetRedeemRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register handles account registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.IdentityKind(req.Kind)
	if kind != domain.KindSeeker && kind != domain.KindEmployer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identity kind"})
		return
	}

	account, err := h.securitySvc.Register(c.Request.Context(), &domain.RegisterInput{
		Kind:          kind,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		h.writeSecurityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "Account created. Please check your email to verify your account.",
			"email":   account.Email,
			"kind":    string(account.Kind),
		},
	})
}

// Login handles credential checks and session creation
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.IdentityKind(req.Kind)
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identity kind"})
		return
	}

	session, account, err := h.authSvc.Login(c.Request.Context(), kind, req.Email, req.Password)
	if err != nil {
		h.writeSecurityError(c, err)
		return
	}

	// Session lifetime is enforced server side; the cookie itself is a
	// session cookie with no client-visible expiry.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, session.ID, 0, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"identity_id":  session.IdentityID,
			"kind":         string(session.IdentityKind),
			"display_name": account.DisplayName(),
		},
	})
}

// Logout revokes the current session and clears the cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)
	if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
		h.logger.WithError(err).Warn("failed to revoke session")
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out"}})
}

// Me returns the identity behind the current session
func (h *AuthHandlers) Me(c *gin.Context) {
	identityID, kind, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	payload := gin.H{
		"identity_id": identityID,
		"kind":        string(kind),
	}
	session, err := h.sessions.Validate(c.Request.Context(), c.GetString(middleware.ContextSessionID))
	if err == nil && session.Data["display_name"] != "" {
		payload["display_name"] = session.Data["display_name"]
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// RequestReset issues a password reset token and mails the link. An
// unknown address gets the same response as a known one.
func (h *AuthHandlers) RequestReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.IdentityKind(req.Kind)
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identity kind"})
		return
	}

	err := h.securitySvc.RequestReset(c.Request.Context(), kind, req.Email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		h.writeSecurityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "If that account exists, a reset link has been sent."},
	})
}

// RedeemReset consumes a reset token and sets the new password
func (h *AuthHandlers) RedeemReset(c *gin.Context) {
	var req ResetRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.securitySvc.RedeemReset(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		h.writeSecurityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": message}})
}

// Verify activates an account from an emailed verification link
func (h *AuthHandlers) Verify(c *gin.Context) {
	token := c.Param("token")
	if err := h.securitySvc.Verify(c.Request.Context(), token); err != nil {
		h.writeSecurityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Account verified. You can now log in."},
	})
}

// writeSecurityError maps domain errors to HTTP responses without leaking
// store internals.
func (h *AuthHandlers) writeSecurityError(c *gin.Context, err error) {
	var weak *domain.WeakPasswordError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, domain.ErrAccountLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is locked. Request a password reset to unlock it."})
	case errors.Is(err, domain.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is not verified. A new verification link has been sent."})
	case errors.Is(err, domain.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with that email already exists"})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, domain.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or already used token"})
	case errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusGone, gin.H{"error": "Token has expired. Please request a new one."})
	case errors.Is(err, domain.ErrMailFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email failed to send, try again"})
	case errors.As(err, &weak):
		c.JSON(http.StatusBadRequest, gin.H{"error": weak.Reason})
	default:
		h.logger.WithError(err).Error("unexpected auth error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
