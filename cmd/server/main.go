package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/tenantgate/admin-portal/docs"
	"github.com/tenantgate/admin-portal/internal/api"
	"github.com/tenantgate/admin-portal/internal/api/handler"
	"github.com/tenantgate/admin-portal/internal/core/ports"
	"github.com/tenantgate/admin-portal/internal/core/service"
	mongodb "github.com/tenantgate/admin-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/tenantgate/admin-portal/internal/infrastructure/db/redis"
	"github.com/tenantgate/admin-portal/internal/infrastructure/notify"
	"github.com/tenantgate/admin-portal/internal/pkg/config"
	"github.com/tenantgate/admin-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Tenant Admin Portal API
// @version                     1.0
// @description                 Multi-tenant user administration with invitation onboarding and role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "admin-portal",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	groups := mongodb.NewGroupRepository(db)
	codes := mongodb.NewCodeRepository(db)
	transactions := mongodb.NewTransactionRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, groups, codes, transactions); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Notifications ---
	var notifier ports.Notifier
	switch cfg.Auth.Notifier {
	case config.NotifierRabbitMQ:
		mq, err := notify.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return err
		}
		defer func() { _ = mq.Close() }()
		notifier = notify.NewRabbitNotifier(mq, cfg.RabbitMQ.Queue, logger.Component("notify"))
	default:
		notifier = notify.NewLogNotifier(logger.Component("notify"))
	}

	// --- Services ---
	clock := service.SystemClock{}
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, clock)
	credentials := service.NewCredentialService(service.CredentialDeps{
		Users:      users,
		Codes:      codes,
		Notifier:   notifier,
		Tokens:     tokens,
		Clock:      clock,
		Guard:      redisdb.NewInviteGuard(rdb),
		LinkBase:   cfg.Auth.InviteLinkBase,
		SessionTTL: cfg.Auth.SessionTokenTTL,
	}, logger.Component("credentials"))

	if cfg.Seed.Enabled() {
		if err := credentials.EnsureSuperAdmin(ctx, cfg.Seed.SuperAdminEmail, cfg.Seed.SuperAdminPassword); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Credentials:  credentials,
		Users:        service.NewUserService(users, credentials, logger.Component("users")),
		Transactions: service.NewTransactionService(transactions, clock, logger.Component("transactions")),
		Groups:       service.NewGroupService(groups, clock, logger.Component("groups")),
		Tokens:       tokens,
		Readiness: map[string]handler.Pinger{
			"mongodb": mongodb.NewProbe(mongoClient),
			"redis":   redisdb.NewProbe(rdb),
		},
		Logger:  logger.Component("http"),
		Swagger: cfg.IsDevelopment(),
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
