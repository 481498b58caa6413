package main

import (
	"context"
	"errors"
	"fmt"

	"merchantgate/internal/config"
	"merchantgate/internal/database"
	"merchantgate/internal/handlers"
	"merchantgate/internal/identity"
	"merchantgate/internal/middleware"
	"merchantgate/internal/repositories"
	"merchantgate/internal/services"
	"merchantgate/pkg/logger"
	"merchantgate/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server bundles the HTTP app with the resources it owns.
type Server struct {
	App *fiber.App
	db  *gorm.DB
	mq  *rabbitmq.Client
	log *logger.Logger
}

// NewApp wires configuration, storage, the identity provider and the HTTP routes.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, err
		}
	}

	resolver, err := newResolver(ctx, cfg.Cognito, log)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	srv := &Server{db: db, log: log}

	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			database.Close(db)
			return nil, err
		}
		srv.mq = mq
		publisher = mq
		log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("merchant events enabled")
	}

	userRepo := repositories.NewGORMUserRepository(db)
	traderRepo := repositories.NewGORMTraderRepository(db)
	merchantService := services.NewMerchantService(resolver, userRepo, traderRepo, publisher, log)
	merchantHandler := handlers.NewMerchantHandler(merchantService, log)

	app := fiber.New(fiber.Config{
		AppName:      "merchantgate",
		ErrorHandler: handlers.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: log.Writer()}))
	app.Use(middleware.BearerToken())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})
	merchantHandler.RegisterRoutes(app)

	srv.App = app
	return srv, nil
}

func newResolver(ctx context.Context, cfg config.CognitoConfig, log *logger.Logger) (identity.Resolver, error) {
	checker := identity.NewTokenChecker(cfg.ClientID)
	switch cfg.Provider {
	case config.ProviderCognito:
		client, err := identity.NewCognitoClient(ctx, cfg.Region)
		if err != nil {
			return nil, err
		}
		return identity.NewCognitoResolver(client, checker, log), nil
	case config.ProviderUserInfo:
		return identity.NewUserInfoResolver(cfg.UserInfoURL, checker, log), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}
}

// Shutdown stops accepting requests and releases the broker and database connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.App.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if s.mq != nil {
		if err := s.mq.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := database.Close(s.db); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	return errors.Join(errs...)
}
