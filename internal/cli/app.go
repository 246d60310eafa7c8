// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/tabwell/internal/application/usecase"
	"github.com/bnema/tabwell/internal/cli/styles"
	"github.com/bnema/tabwell/internal/config"
	"github.com/bnema/tabwell/internal/domain/repository"
	"github.com/bnema/tabwell/internal/domain/route"
	"github.com/bnema/tabwell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabwell/internal/logging"
)

// BuildInfo carries version metadata set via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo BuildInfo

	Tabs      *usecase.ManageTabsUseCase
	StateRepo repository.WorkspaceStateRepository

	db  *sql.DB
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := config.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	stateRepo := sqlite.NewWorkspaceStateRepository(db)
	resolver := route.NewResolver(resolverPages(cfg), nil, nil)
	tabs := usecase.NewManageTabsUseCase(resolver, stateRepo)

	if cfg.Workspace.RestoreOnStart {
		if err := tabs.Load(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("restore workspace: %w", err)
		}
	}

	if mgr := config.GetManager(); mgr != nil {
		mgr.OnConfigChange(func(next *config.Config) {
			zerolog.SetGlobalLevel(logging.ParseLevel(next.Logging.Level))
			logger.Info().Str("level", next.Logging.Level).Msg("configuration reloaded")
		})
		if err := mgr.Watch(); err != nil {
			logger.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	logger.Debug().
		Str("db_path", cfg.Database.Path).
		Int("tab_count", len(tabs.Tabs())).
		Msg("workspace ready")

	return &App{
		Config:    cfg,
		Theme:     styles.NewTheme(),
		Tabs:      tabs,
		StateRepo: stateRepo,
		db:        db,
		ctx:       ctx,
	}, nil
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases the application's resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// resolverPages merges configured page overrides into the built-in static
// route table.
func resolverPages(cfg *config.Config) map[string]route.Page {
	pages := route.DefaultPages()
	for path, page := range cfg.Workspace.Pages {
		pages[route.Normalize(path)] = route.Page{
			Title:     page.Title,
			Closeable: page.Closeable,
		}
	}
	return pages
}
