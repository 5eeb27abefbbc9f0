package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cadenceinadapter "mcad/internal/modules/cadence/adapter/in"
	cadenceoutadapter "mcad/internal/modules/cadence/adapter/out"
	cadencedomain "mcad/internal/modules/cadence/domain"
	cadenceservice "mcad/internal/modules/cadence/service"
	cadenceusecase "mcad/internal/modules/cadence/usecase"
	notifyinadapter "mcad/internal/modules/notify/adapter/in"
	notifyoutadapter "mcad/internal/modules/notify/adapter/out"
	notifyservice "mcad/internal/modules/notify/service"
	notifyusecase "mcad/internal/modules/notify/usecase"
	rosterinadapter "mcad/internal/modules/roster/adapter/in"
	rosteroutadapter "mcad/internal/modules/roster/adapter/out"
	rosterdomain "mcad/internal/modules/roster/domain"
	rosterservice "mcad/internal/modules/roster/service"
	rosterusecase "mcad/internal/modules/roster/usecase"
	"mcad/internal/platform/clock"
	"mcad/internal/platform/config"
	"mcad/internal/platform/id"
	"mcad/internal/platform/tablestore"
	uiapp "mcad/internal/ui/app"
)

type App struct {
	RosterCLI  rosterinadapter.CLIHandler
	CadenceCLI cadenceinadapter.CLIHandler
	NotifyCLI  notifyinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	var client tablestore.Client
	switch cfg.Store {
	case config.StoreHTTP:
		client = tablestore.NewHTTPClient(cfg.BaseURL, cfg.Token)
	default:
		fileClient := tablestore.NewFileClient(cfg.DataDir)
		// The file store is local, so creating the tables up front is
		// cheap and saves a first-run stumble.
		if err := fileClient.EnsureTable(context.Background(), cfg.RosterTable, rosterdomain.PrimaryColumns); err != nil {
			return nil, fmt.Errorf("ensure roster table: %w", err)
		}
		if err := fileClient.EnsureTable(context.Background(), cfg.HistoryTable, cadencedomain.HistoryColumns); err != nil {
			return nil, fmt.Errorf("ensure history table: %w", err)
		}
		client = fileClient
	}

	rosterStore := rosteroutadapter.NewTableRosterStore(client, cfg.RosterTable)
	rosterProjector, err := rosteroutadapter.NewSQLiteRosterProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new roster projector: %w", err)
	}
	mirror := rosterservice.NewMirror(rosterStore, clk, ids, cfg.RefreshTTL)
	rosterUC := rosterusecase.NewInteractor(rosterservice.NewRosterService(mirror, rosterStore, rosterProjector))

	historyProjector, err := cadenceoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	cadenceUC := cadenceusecase.NewInteractor(cadenceservice.NewCadenceService(
		clk,
		rosterUC,
		cadenceoutadapter.NewTableHistoryStore(client, cfg.HistoryTable),
		historyProjector,
	))

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		rosterUC,
		notifyoutadapter.NewFileManifestStore(cfg.NotifierPath),
		notifyoutadapter.NewGRPCHost(),
		notifyoutadapter.NewWebhookSender(),
	))

	return &App{
		RosterCLI:  rosterinadapter.NewCLIHandler(rosterUC),
		CadenceCLI: cadenceinadapter.NewCLIHandler(cadenceUC),
		NotifyCLI:  notifyinadapter.NewCLIHandler(notifyUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.RosterCLI, app.CadenceCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
