package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "abaterm/internal/modules/catalog/adapter/in"
	catalogoutadapter "abaterm/internal/modules/catalog/adapter/out"
	catalogservice "abaterm/internal/modules/catalog/service"
	catalogusecase "abaterm/internal/modules/catalog/usecase"
	sessioninadapter "abaterm/internal/modules/session/adapter/in"
	sessionoutadapter "abaterm/internal/modules/session/adapter/out"
	sessionservice "abaterm/internal/modules/session/service"
	sessionusecase "abaterm/internal/modules/session/usecase"
	summaryinadapter "abaterm/internal/modules/summary/adapter/in"
	summaryoutadapter "abaterm/internal/modules/summary/adapter/out"
	summaryservice "abaterm/internal/modules/summary/service"
	summaryusecase "abaterm/internal/modules/summary/usecase"
	"abaterm/internal/platform/clock"
	"abaterm/internal/platform/config"
	"abaterm/internal/platform/id"
	uiapp "abaterm/internal/ui/app"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	CatalogCLI cataloginadapter.CLIHandler
	SummaryCLI summaryinadapter.CLIHandler

	archive *sessionoutadapter.SQLiteArchive
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	configured := cfg.EndpointConfigured()

	archive, err := sessionoutadapter.NewSQLiteArchive(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("new session archive: %w", err)
	}

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids),
		sessionoutadapter.NewSheetSubmitter(cfg.EndpointURL, configured),
		sessionoutadapter.NewFileDraftStore(cfg.DraftPath()),
		archive,
	)

	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogoutadapter.NewSheetFetcher(cfg.EndpointURL, configured),
	))

	summaryUC := summaryusecase.NewInteractor(
		summaryservice.NewSummaryService(
			summaryoutadapter.NewPluginSummarizer(cfg.SummarizerPlugin),
			summaryoutadapter.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model),
		),
		sessionUC,
	)

	return &App{
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		SummaryCLI: summaryinadapter.NewCLIHandler(summaryUC),
		archive:    archive,
	}, nil
}

// Archive exposes the local submission archive for the history command.
func (a *App) Archive() *sessionoutadapter.SQLiteArchive { return a.archive }

// Close releases background resources, the archive database handle for now.
func (a *App) Close() error {
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.CatalogCLI, app.SummaryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
