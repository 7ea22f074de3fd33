package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/config"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/auth"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/database"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/notifications"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/records"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/repositories"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// Infrastructure
	Mongo       *mongo.Database
	RedisClient *redis.Client
	Records     *records.Store

	// Repositories
	AccountRepo domain.AccountRepository
	MessageRepo domain.MessageRepository
	Sessions    domain.SessionStore

	// Services
	PasswordSvc domain.PasswordService
	Tokens      domain.TokenGenerator
	Mailer      domain.Mailer
	SecuritySvc domain.SecurityService
	AuthSvc     domain.AuthService
	ChatSvc     domain.ChatService
	Delivery    *services.DeliveryService
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStores(ctx); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	return c, nil
}

func (c *Container) initStores(ctx context.Context) error {
	db, err := database.OpenMongo(ctx, c.Config.MongoURI, c.Config.MongoDatabase)
	if err != nil {
		return err
	}
	c.Mongo = db
	c.Records = records.New(db)

	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	return database.PingRedis(ctx, c.RedisClient)
}

func (c *Container) initRepositories() {
	c.AccountRepo = repositories.NewAccountRepository(c.Records)
	c.MessageRepo = repositories.NewMessageRepository(c.Records)
	c.Sessions = repositories.NewSessionRepository(c.RedisClient, c.Config.SessionTTL, c.Logger)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.Tokens = auth.NewTokenGenerator()
	c.Mailer = notifications.NewMailgunService(
		c.Config.MailgunDomain,
		c.Config.MailgunAPIKey,
		c.Config.MailSender,
		c.Logger,
	)

	c.SecuritySvc = services.NewSecurityService(
		c.AccountRepo,
		c.PasswordSvc,
		c.Tokens,
		c.Mailer,
		services.SecurityConfig{
			LockThreshold:   c.Config.LockThreshold,
			ResetTTL:        c.Config.ResetTTL,
			VerificationTTL: c.Config.VerificationTTL,
			BaseURL:         c.Config.BaseURL,
		},
		c.Logger,
	)
	c.AuthSvc = services.NewAuthService(c.SecuritySvc, c.Sessions, c.Logger)
	c.ChatSvc = services.NewChatService(c.MessageRepo)
	c.Delivery = services.NewDeliveryService(c.MessageRepo, c.Config.StreamPollInterval, c.Logger)
}

// Close releases the container's store connections.
func (c *Container) Close(ctx context.Context) {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if c.Mongo != nil {
		if err := database.CloseMongo(ctx, c.Mongo); err != nil {
			c.Logger.WithError(err).Warn("failed to close mongo client")
		}
	}
}
