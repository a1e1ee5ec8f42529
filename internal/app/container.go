// Package app assembles the process: configuration, database, services and the
// HTTP surface, resolved through a dig container.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"nakliye/internal/catalog"
	"nakliye/internal/config"
	"nakliye/internal/database"
	"nakliye/internal/handler"
	"nakliye/internal/location"
	"nakliye/internal/middleware"
	"nakliye/internal/repository"
	"nakliye/internal/service"
	"nakliye/internal/token"
	"nakliye/internal/websocket"

	"go.uber.org/dig"
	"gorm.io/gorm"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	args      []string
	dbConnect func(dsn string) (*gorm.DB, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a builder reading flags from args.
func NewContainerBuilder(args []string) *ContainerBuilder {
	return &ContainerBuilder{
		args:      args,
		dbConnect: database.NewConnection,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn func(dsn string) (*gorm.DB, error)) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.Build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// Build registers every provider. Nothing is constructed until Invoke.
func (b *ContainerBuilder) Build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.args); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, args []string) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() (*config.Config, error) { return config.Load(args) },
		catalog.Load,
		func(cat *catalog.Catalog) *location.Resolver { return cat.Locations() },
		func(cfg *config.Config) *token.Manager {
			return token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL)
		},
		func(cfg *config.Config, tokens *token.Manager) *middleware.Auth {
			return middleware.NewAuth(tokens, cfg.RefreshTokenTTL, cfg.Release())
		},
		websocket.NewHub,
		func(hub *websocket.Hub) service.EventPublisher { return hub },
	)
}

func registerDb(container *dig.Container, dbConnect func(dsn string) (*gorm.DB, error)) error {
	providerDB := func(cfg *config.Config) (*gorm.DB, error) {
		db, err := dbConnect(cfg.DB.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect %s:%s/%s: %w", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name, err)
		}
		return db, nil
	}
	return provideAll(container,
		providerDB,
		repository.NewTransactionManager,
		repository.NewAuditRepository,
		repository.NewUserRepository,
		repository.NewCompanyRepository,
		repository.NewListingRepository,
		repository.NewOfferRepository,
		repository.NewMembershipRepository,
		repository.NewAnnouncementRepository,
		repository.NewHeroSlideRepository,
		repository.NewContactRepository,
		repository.NewDashboardRepository,
	)
}

func registerService(container *dig.Container) error {
	authProvider := func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		audit repository.AuditRepository,
		tx repository.TransactionManager,
		tokens *token.Manager,
		cfg *config.Config,
		resolver *location.Resolver,
		events service.EventPublisher,
	) service.AuthService {
		return service.NewAuthService(users, companies, audit, tx, tokens, cfg.RefreshTokenTTL, resolver, events)
	}
	return provideAll(container,
		service.NewReferenceService,
		authProvider,
		service.NewCompanyService,
		service.NewNoteService,
		service.NewListingService,
		service.NewOfferService,
		service.NewMembershipService,
		service.NewAnnouncementService,
		service.NewHeroSlideService,
		service.NewContactService,
		service.NewAuditService,
		service.NewDashboardService,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, h http.Handler) *http.Server {
		return &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handler.NewReferenceHandler,
		handler.NewAuthHandler,
		handler.NewListingHandler,
		handler.NewOfferHandler,
		handler.NewCompanyHandler,
		handler.NewContentHandler,
		handler.NewAdminHandler,
		NewRouter,
		serverProvider,
	)
}
