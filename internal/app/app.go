package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/config"
	httpx "github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/http"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/http/handlers"
)

const sessionSweepInterval = time.Hour

// Run wires the container, starts the expired-session sweeper and serves
// HTTP until SIGINT/SIGTERM.
func Run(cfg *config.Config) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Close(closeCtx)
	}()

	go sweepSessions(ctx, c)

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.SecuritySvc, c.Sessions, logger)
	chatH := handlers.NewChatHandlers(c.ChatSvc, c.Delivery, logger)
	adminH := handlers.NewAdminHandlers(c.SecuritySvc, logger)

	r := httpx.BuildRouter(authH, chatH, adminH, c.Sessions, cfg.LoginRatePerSecond)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sweepSessions periodically clears expired sessions that no request
// has touched since they lapsed.
func sweepSessions(ctx context.Context, c *Container) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Sessions.DeleteExpired(ctx); err != nil {
				c.Logger.WithError(err).Warn("expired session sweep failed")
			}
		}
	}
}
