package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/http/handlers"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Credential endpoints sit behind the
// rate limiter; everything under a session guard declares which identity
// kinds may reach it.
func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.ChatHandlers, adm *handlers.AdminHandlers, sessions domain.SessionStore, loginRatePerSecond float64) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	limited := middleware.RateLimit(loginRatePerSecond)

	auth := r.Group("/auth")
	auth.POST("/register", limited, ah.Register)
	auth.POST("/login", limited, ah.Login)
	auth.POST("/reset/request", limited, ah.RequestReset)
	auth.POST("/reset/redeem", ah.RedeemReset)
	auth.GET("/verify/:token", ah.Verify)

	anyKind := middleware.RequireKind(sessions, domain.KindSeeker, domain.KindEmployer, domain.KindAdmin)
	auth.POST("/logout", anyKind, ah.Logout)
	auth.GET("/me", anyKind, ah.Me)

	chat := r.Group("/chat").Use(middleware.RequireKind(sessions, domain.KindSeeker, domain.KindEmployer))
	chat.POST("/messages", ch.Send)
	chat.GET("/conversation", ch.Conversation)
	chat.GET("/conversations", ch.Threads)
	chat.POST("/messages/:id/read", ch.MarkRead)
	chat.GET("/unread_count", ch.UnreadCount)
	chat.GET("/stream", ch.Stream)

	admin := r.Group("/admin").Use(middleware.RequireKind(sessions, domain.KindAdmin))
	admin.POST("/accounts/lock", adm.Lock)
	admin.POST("/accounts/unlock", adm.Unlock)

	return r
}
