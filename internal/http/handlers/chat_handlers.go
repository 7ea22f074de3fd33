package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/http/middleware"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/services"
)

// ChatHandlers handles messaging HTTP requests
type ChatHandlers struct {
	chatSvc  domain.ChatService
	delivery *services.DeliveryService
	logger   *logrus.Logger
}

// NewChatHandlers creates new chat handlers
func NewChatHandlers(chatSvc domain.ChatService, delivery *services.DeliveryService, logger *logrus.Logger) *ChatHandlers {
	return &ChatHandlers{
		chatSvc:  chatSvc,
		delivery: delivery,
		logger:   logger,
	}
}

// SendRequest represents an outbound chat message
type SendRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
	JobID      string `json:"job_id,omitempty"`
}

// Send stores a new message
func (h *ChatHandlers) Send(c *gin.Context) {
	identityID, kind, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chatSvc.Send(c.Request.Context(), identityID, kind, req.ReceiverID, req.Content, req.JobID)
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": messagePayload(msg)})
}

// Conversation returns one thread in ascending timestamp order
func (h *ChatHandlers) Conversation(c *gin.Context) {
	identityID, _, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	with := c.Query("with")
	if with == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'with' is required"})
		return
	}
	jobID := c.Query("job_id")

	msgs, err := h.chatSvc.Conversation(c.Request.Context(), identityID, with, jobID)
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	payload := make([]gin.H, len(msgs))
	for i, msg := range msgs {
		payload[i] = messagePayload(msg)
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// Threads returns latest-first conversation summaries
func (h *ChatHandlers) Threads(c *gin.Context) {
	identityID, _, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	threads, err := h.chatSvc.Threads(c.Request.Context(), identityID)
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	payload := make([]gin.H, len(threads))
	for i, thread := range threads {
		entry := gin.H{
			"counterpart_id":   thread.CounterpartID,
			"counterpart_kind": string(thread.CounterpartKind),
			"job_id":           thread.JobID,
			"unread_count":     thread.UnreadCount,
		}
		if thread.LastMessage != nil {
			entry["last_message"] = messagePayload(thread.LastMessage)
		}
		payload[i] = entry
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// MarkRead flips a message to read
func (h *ChatHandlers) MarkRead(c *gin.Context) {
	if _, _, ok := middleware.IdentityFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.chatSvc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Marked as read"}})
}

// UnreadCount returns the total unread messages addressed to the identity
func (h *ChatHandlers) UnreadCount(c *gin.Context) {
	identityID, _, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	count, err := h.chatSvc.UnreadCount(c.Request.Context(), identityID)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unread_count": count}})
}

// Stream pushes new messages to the client over server-sent events until
// the client disconnects or the store fails.
func (h *ChatHandlers) Stream(c *gin.Context) {
	identityID, kind, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	checkpoint := time.Now().UTC()
	if since := c.Query("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'since' timestamp"})
			return
		}
		checkpoint = parsed.UTC()
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	events := h.delivery.Stream(c.Request.Context(), identityID, kind, checkpoint)

	c.Stream(func(w io.Writer) bool {
		ev, open := <-events
		if !open {
			return false
		}
		if ev.Err != nil {
			c.SSEvent("error", gin.H{"error": "Message stream failed, please reconnect"})
			return false
		}

		msg := ev.Message
		c.SSEvent("message", gin.H{
			"message_id":       msg.ID,
			"sender_id":        msg.SenderID,
			"receiver_id":      msg.ReceiverID,
			"sender_kind":      string(msg.SenderKind),
			"content":          msg.Content,
			"timestamp":        msg.SentAt.UTC().Format(time.RFC3339Nano),
			"is_read":          msg.IsRead,
			"job_id":           msg.JobID,
			"conversation_key": msg.ConversationKey(),
		})
		return true
	})
}

func messagePayload(msg *domain.Message) gin.H {
	return gin.H{
		"message_id":       msg.ID,
		"sender_id":        msg.SenderID,
		"receiver_id":      msg.ReceiverID,
		"sender_kind":      string(msg.SenderKind),
		"content":          msg.Content,
		"timestamp":        msg.SentAt.UTC().Format(time.RFC3339Nano),
		"is_read":          msg.IsRead,
		"job_id":           msg.JobID,
		"conversation_key": msg.ConversationKey(),
	}
}

func (h *ChatHandlers) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.WithError(err).Error("message store unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	default:
		h.logger.WithError(err).Error("unexpected chat error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
