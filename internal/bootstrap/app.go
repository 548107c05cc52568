package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/grigofil/plaudctl/internal/config"
	"github.com/grigofil/plaudctl/internal/core/domain"
	"github.com/grigofil/plaudctl/internal/core/ports"
	"github.com/grigofil/plaudctl/internal/core/usecase"
	"github.com/grigofil/plaudctl/internal/infrastructure/api"
	"github.com/grigofil/plaudctl/internal/infrastructure/normalize"
	"github.com/grigofil/plaudctl/internal/infrastructure/repository/localjson"
	"github.com/grigofil/plaudctl/internal/infrastructure/resilience"
	"github.com/grigofil/plaudctl/internal/infrastructure/storage/localfs"
	"github.com/grigofil/plaudctl/internal/observability/logging"
	"github.com/grigofil/plaudctl/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ClientMetrics

	API         ports.TranscriptionAPI
	Transcriber ports.TranscriptionRunner
	History     ports.HistoryService
	Staging     ports.UploadStager
}

// New wires the client stack. The observer receives poller transitions on
// top of the terminal-state metric accounting added here.
func New(cfg config.Config, observer ports.PollObserver) (*App, error) {
	logger := logging.NewJSONLogger("plaudctl", cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewClientMetrics("plaudctl")
	client := api.New(cfg.HTTPTimeout,
		api.WithExecutor(resilience.NewExecutor(resilience.DefaultConfig())),
		api.WithMetrics(m),
	)

	staging, err := localfs.NewStaging(cfg.StagingDir)
	if err != nil {
		return nil, fmt.Errorf("init staging: %w", err)
	}

	history := usecase.NewHistoryUseCase(localjson.NewStore(cfg.HistoryPath), client)

	wrapped := func(t domain.Transition) {
		if t.State == domain.PollStateDone || t.State == domain.PollStateFailed {
			m.IncTerminal(string(t.State))
		}
		if observer != nil {
			observer(t)
		}
	}

	transcriber := usecase.NewTranscribeUseCase(
		client,
		normalize.NewNormalizer(),
		history,
		staging,
		cfg.PollInterval,
		wrapped,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,

		API:         client,
		Transcriber: transcriber,
		History:     history,
		Staging:     staging,
	}, nil
}
