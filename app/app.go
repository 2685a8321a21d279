package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/scramble-live/scoreboard/config"
	"github.com/scramble-live/scoreboard/db/bundb"
	"github.com/scramble-live/scoreboard/eventbus"
	"github.com/scramble-live/scoreboard/observability"

	displayservice "github.com/scramble-live/scoreboard/app/modules/display/application"
	scoringservice "github.com/scramble-live/scoreboard/app/modules/scoring/application"
	scoringhandlers "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/handlers"
	scoringrouter "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/router"
)

// App wires the modules together: one DB pool, one in-process bus, one HTTP
// listener, plus the metrics side listener.
type App struct {
	Cfg             *config.Config
	Observability   *observability.Observability
	ScoringService  scoringservice.Service
	ActivityMonitor *displayservice.ActivityMonitor

	db      *bundb.DBService
	bus     eventbus.EventBus
	httpSrv *http.Server
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability.Environment)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus := eventbus.New(obs.Logger)

	metrics := scoringservice.NewPrometheusMetrics(obs.Registry)
	svc := scoringservice.NewScoringService(dbService.ScoringDB, bus, obs.Logger, metrics, obs.Tracer)

	tracker := displayservice.NewTracker(cfg.Scoring.HighlightWindow)
	monitor := displayservice.NewActivityMonitor(bus, obs.Logger)

	handlers := scoringhandlers.NewScoringHandlers(svc, tracker, obs.Logger)
	limiter := scoringhandlers.NewTokenRateLimiter(rate.Limit(cfg.Scoring.WriteRateLimit), cfg.Scoring.WriteRateBurst)
	router := scoringrouter.New(handlers, limiter)

	return &App{
		Cfg:             cfg,
		Observability:   obs,
		ScoringService:  svc,
		ActivityMonitor: monitor,
		db:              dbService,
		bus:             bus,
		httpSrv:         &http.Server{Addr: cfg.HTTP.Addr, Handler: router},
	}, nil
}

// Run starts the bus consumer, metrics listener, and API listener, then
// blocks until ctx is cancelled or a listener fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	go func() {
		if err := a.ActivityMonitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("activity monitor: %w", err)
		}
	}()

	go func() {
		if err := a.Observability.ServeMetrics(ctx, a.Cfg.Observability.MetricsAddress); err != nil {
			errCh <- fmt.Errorf("metrics listener: %w", err)
		}
	}()

	go func() {
		a.Observability.Logger.Info("api listener starting", slog.String("addr", a.Cfg.HTTP.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api listener: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown drains the API listener, closes the bus, and releases the DB pool.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.httpSrv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("bus close: %w", err))
	}
	if err := a.db.GetDB().Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	}

	return errors.Join(errs...)
}

// DB returns the database service.
func (a *App) DB() *bundb.DBService {
	return a.db
}
