package cli

import (
	"context"
	"os"

	"github.com/jhoicas/Costbook-api/internal/application/session"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/storage"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/Costbook-api/pkg/config"
	"github.com/jhoicas/Costbook-api/pkg/logger"
)

// App casos de uso abiertos para un comando.
type App struct {
	Session    *session.Session
	Money      costing.Formatter
	Materials  *usecase.MaterialUseCase
	Ledger     *usecase.LedgerUseCase
	Categories *usecase.CategoryUseCase
	Backup     *usecase.BackupUseCase

	closer func() error
}

// Opener abre la sesión de datos para los comandos.
type Opener func(ctx context.Context, opts *RootOptions) (*App, error)

// NewApp arma los casos de uso sobre una sesión. closer puede ser nil.
func NewApp(s *session.Session, money costing.Formatter, fontFile string, closer func() error) *App {
	sheets := xlsx.New()
	gen := pdf.NewMarotoPDFGenerator(fontFile)
	return &App{
		Session:    s,
		Money:      money,
		Materials:  usecase.NewMaterialUseCase(s, money, sheets),
		Ledger:     usecase.NewLedgerUseCase(s, money, sheets, gen),
		Categories: usecase.NewCategoryUseCase(s),
		Backup:     usecase.NewBackupUseCase(s),
		closer:     closer,
	}
}

// Close libera el almacenamiento.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// OpenFromConfig Opener por defecto: config, logger en stderr y storage.Open.
func OpenFromConfig(ctx context.Context, opts *RootOptions) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.App.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(logger.Config{Env: cfg.App.Env, Level: level}, os.Stderr)

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s, err := session.Open(ctx, store, log)
	if err != nil {
		store.Close()
		return nil, err
	}
	for _, w := range s.Warnings() {
		log.Warn().Str("warning", w).Msg("datos descartados al cargar")
	}
	return NewApp(s, costing.NewFormatter(cfg.App.Currency), cfg.App.PDFFont, store.Close), nil
}
