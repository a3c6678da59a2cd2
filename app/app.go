package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/studyplan/config"
	"github.com/kilianp07/studyplan/core/events"
	coremetrics "github.com/kilianp07/studyplan/core/metrics"
	coremon "github.com/kilianp07/studyplan/core/monitoring"
	corestore "github.com/kilianp07/studyplan/core/store"
	"github.com/kilianp07/studyplan/infra/logger"
	"github.com/kilianp07/studyplan/infra/metrics"
	"github.com/kilianp07/studyplan/infra/monitoring"
	"github.com/kilianp07/studyplan/infra/mqtt"
	"github.com/kilianp07/studyplan/infra/store"
	"github.com/kilianp07/studyplan/internal/eventbus"
	"github.com/kilianp07/studyplan/jobs/rebalance"
)

// App owns the long-lived resources built from the configuration.
type App struct {
	Service *Service

	cfg      *config.Config
	store    corestore.Store
	bus      *eventbus.Bus[events.Event]
	sink     coremetrics.MetricsSink
	notifier *mqtt.Notifier
	job      *rebalance.Job
	log      logger.Logger
}

// New opens the store, builds the metrics sinks and the optional MQTT
// notifier and rebalance job. ctx bounds the MQTT handler and the job.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	a := &App{cfg: cfg, store: st, sink: sink, bus: eventbus.New[events.Event](), log: logger.New("app")}
	a.Service = NewService(st,
		WithScheduler(cfg.Schedule.Scheduler()),
		WithDefaults(cfg.Schedule.Settings()),
		WithBus(a.bus),
		WithLogger(logger.New("service")),
	)

	if cfg.MQTT.Enabled {
		n, err := mqtt.NewNotifier(ctx, cfg.MQTT, a.Service.HandleProgressCommand)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		a.notifier = n
	}
	if cfg.Jobs.Rebalance.Enabled {
		j, err := rebalance.New(ctx, a.Service, cfg.Jobs.Rebalance.Cron)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.job = j
	}
	return a, nil
}

// Run serves handler on the configured address and starts the background
// consumers. It blocks until ctx is canceled or the server fails.
func (a *App) Run(ctx context.Context, handler http.Handler) error {
	defer coremon.Recover()

	metrics.StartEventCollector(ctx, a.bus, a.sink)
	if a.notifier != nil {
		go a.notifier.Run(ctx, a.bus)
	}
	if a.job != nil {
		a.job.Start()
		defer a.job.Stop()
	}
	if addr := a.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				a.log.Errorf("prom server: %v", err)
				coremon.CaptureException(err, map[string]string{"component": "prom-server"})
			}
		}()
	}

	srv := &http.Server{Addr: a.cfg.Server.Addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("listening on %s", a.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.Shutdown())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the notifier, the event bus, the metrics sink and the store.
func (a *App) Close() error {
	if a.notifier != nil {
		a.notifier.Close()
	}
	a.bus.Close()
	if c, ok := a.sink.(interface{ Close() }); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return a.store.Close()
}
