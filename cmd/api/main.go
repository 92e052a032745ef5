package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/werb210/staff-portal-api/internal/application/auth"
	"github.com/werb210/staff-portal-api/internal/application/silo"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
	"github.com/werb210/staff-portal-api/internal/infrastructure/memory"
	infrapdf "github.com/werb210/staff-portal-api/internal/infrastructure/pdf"
	"github.com/werb210/staff-portal-api/internal/infrastructure/postgres"
	"github.com/werb210/staff-portal-api/internal/interfaces/http"
	"github.com/werb210/staff-portal-api/pkg/config"
	"github.com/werb210/staff-portal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Stores por silo según el driver configurado. La factory construye
	// instancias frescas por silo: el aislamiento es arquitectural.
	var factory silo.StoreFactory
	var userRepo repository.UserRepository
	var pool *pgxpool.Pool

	switch cfg.Storage.Driver {
	case "postgres":
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		factory = func(s entity.Silo) silo.Stores {
			return silo.Stores{
				Applications: postgres.NewApplicationRepository(pool, s),
				Pipeline:     postgres.NewPipelineRepository(pool, s),
				Products:     postgres.NewLenderProductRepository(pool, s),
				Documents:    postgres.NewDocumentRepository(pool, s),
			}
		}
	default: // memory
		userRepo = memory.NewUserRepository()
		factory = func(s entity.Silo) silo.Stores {
			return silo.Stores{
				Applications: memory.NewApplicationRepository(),
				Pipeline:     memory.NewPipelineRepository(s),
				Products:     memory.NewLenderProductRepository(),
				Documents:    memory.NewDocumentRepository(),
			}
		}
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	registry := silo.NewRegistry(factory, memory.NewBlobStore(), pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Staff Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	http.Router(app, http.RouterDeps{
		Registry:  registry,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
