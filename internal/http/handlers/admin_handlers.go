package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// AdminHandlers handles administrative account operations
type AdminHandlers struct {
	securitySvc domain.SecurityService
	logger      *logrus.Logger
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(securitySvc domain.SecurityService, logger *logrus.Logger) *AdminHandlers {
	return &AdminHandlers{securitySvc: securitySvc, logger: logger}
}

// LockToggleRequest names the account an admin wants to lock or unlock
type LockToggleRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Lock locks an account, blocking logins until an unlock or a reset
func (h *AdminHandlers) Lock(c *gin.Context) {
	h.toggle(c, true)
}

// Unlock clears the lock and the failed-attempt counter
func (h *AdminHandlers) Unlock(c *gin.Context) {
	h.toggle(c, false)
}

func (h *AdminHandlers) toggle(c *gin.Context, locked bool) {
	var req LockToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.IdentityKind(req.Kind)
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identity kind"})
		return
	}

	if err := h.securitySvc.SetLocked(c.Request.Context(), kind, req.Email, locked); err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		h.logger.WithError(err).Error("failed to toggle account lock")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	message := "Account unlocked"
	if locked {
		message = "Account locked"
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": message}})
}
