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

	"github.com/jhoicas/Costbook-api/docs"
	"github.com/jhoicas/Costbook-api/internal/application/auth"
	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Costbook-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/storage"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Costbook-api/internal/interfaces/http"
	"github.com/jhoicas/Costbook-api/pkg/config"
	"github.com/jhoicas/Costbook-api/pkg/logger"
)

func main() {
	started := time.Now()
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	m := metrics.New()
	s, err := session.Open(ctx, store, log, session.WithMetrics(m))
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos")
	}
	for _, w := range s.Warnings() {
		log.Warn().Str("warning", w).Msg("datos descartados al cargar")
	}

	money := costing.NewFormatter(cfg.App.Currency)
	sheets := xlsx.New()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.PDFFont)

	authUC := auth.NewAuthUseCase(cfg.Auth.OwnerPasswordHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.LoginRatePerMinute)
	if !cfg.AuthEnabled() {
		log.Warn().Msg("login no configurado (JWT_SECRET / OWNER_PASSWORD_HASH): API abierta")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Costbook API",
		}))
	} else {
		app.Get("/docs/swagger.json", func(c *fiber.Ctx) error {
			doc, err := docs.JSON()
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
	}

	deps := httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		StartedAt:    started,
		MaterialUC:   usecase.NewMaterialUseCase(s, money, sheets),
		CalculatorUC: usecase.NewCalculatorUseCase(s, money),
		RecipeUC:     usecase.NewRecipeUseCase(s, money, pdfGenerator),
		LedgerUC:     usecase.NewLedgerUseCase(s, money, sheets, pdfGenerator),
		CategoryUC:   usecase.NewCategoryUseCase(s),
		BackupUC:     usecase.NewBackupUseCase(s),
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m.Handler()
	}
	httpRouter.Router(app, deps)

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
