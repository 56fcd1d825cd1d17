package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastillo/asistente-api/internal/application/auth"
	"github.com/jcastillo/asistente-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastillo/asistente-api/internal/interfaces/http"
	"github.com/jcastillo/asistente-api/pkg/config"
	"github.com/jcastillo/asistente-api/pkg/jwt"
	"github.com/jcastillo/asistente-api/pkg/logger"
	"github.com/jcastillo/asistente-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool, cfg.DB.Timeout)
	hasher := password.NewHasher(cfg.Hash.Cost)
	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("emisor JWT")
	}
	authUC := auth.NewUseCase(userRepo, hasher, issuer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (si existe el JSON generado)
	if !httpRouter.MountSwagger(app, "./docs/swagger.json", "Asistente API") {
		log.Warn().Msg("docs/swagger.json no existe, UI de documentación deshabilitada")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:  authUC,
		Issuer:  issuer,
		AppName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
