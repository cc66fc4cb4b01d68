// Package main wires the HTTP server for the SynergySphere collaboration service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"synergysphere/config"
	"synergysphere/internal/auth"
	"synergysphere/internal/notify"
	"synergysphere/internal/repository"
	"synergysphere/internal/transport/http/middleware"
	"synergysphere/internal/transport/http/server/handlers-fiber"
	"synergysphere/internal/usecase"
	"synergysphere/internal/usecase/domain"
	"synergysphere/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	resets := repository.NewResetTokens(log, cfg)
	if err := resets.OnStart(ctx); err != nil {
		log.Errorw("reset token store start error", "error", err)
		return
	}
	defer func() {
		_ = resets.OnStop(context.Background())
	}()

	tokens, err := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Errorw("token issuer initialization error", "error", err)
		return
	}

	uc := usecase.New(log, ctx, repo, cfg.HTTP.RequestTimeout,
		domain.WithTokens(tokens),
		domain.WithHasher(auth.Bcrypt{Cost: cfg.Auth.BcryptCost}),
		domain.WithPasswordReset(resets, notify.New(log, cfg.SMTP), cfg.Auth.ResetTokenTTL, cfg.Auth.ResetURL),
		domain.WithStrictAssignee(cfg.Tasks.StrictAssignee),
	)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	serv.Use(middleware.RequestLogger(log))

	h := handlers_fiber.NewHandler(log, uc)
	h.Register(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
