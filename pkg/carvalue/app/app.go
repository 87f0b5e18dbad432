// Package app wires the loaded assets into a running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/config"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dataset"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/logging"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/model"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/money"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/selector"
	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/server"
)

const shutdownTimeout = 10 * time.Second

// Assets are the read-only resources shared by every request.
type Assets struct {
	Data     *dataset.Accessor
	Model    model.Model
	Selector *selector.Selector
	Money    *money.Formatter
}

// App owns the HTTP server and the log sinks.
type App struct {
	httpServer   *http.Server
	logger       logging.Logger
	fluentClient *fluent.Fluent
}

// NewLogger builds the console logger and, when enabled, mirrors it to
// Fluent Bit. The returned client is nil unless fluent is enabled and must be
// closed by the caller.
func NewLogger(cfg *config.Config) (logging.Logger, *fluent.Fluent, error) {
	level, ok := logging.ParseLevel(cfg.Log.Level)
	console := logging.NewSlog(logging.SlogConfig{
		Writer: os.Stderr,
		Level:  level,
		JSON:   cfg.Log.JSON,
		Color:  cfg.Log.Color,
	})
	if !ok {
		console.Warn("unknown log level, using info", logging.Fields{"level": cfg.Log.Level})
	}
	active := []logging.Logger{console}

	var client *fluent.Fluent
	if cfg.Fluent.Enabled {
		var err error
		client, err = logging.NewFluentClient(logging.FluentConfig{
			Host:      cfg.Fluent.Host,
			Port:      cfg.Fluent.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			return nil, nil, err
		}
		fluentLevel, _ := logging.ParseLevel(cfg.Fluent.Level)
		fl, err := logging.NewFluent(client, fluentLevel)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		active = append(active, fl)
	}

	multi, err := logging.NewMulti(active...)
	if err != nil {
		if client != nil {
			client.Close()
		}
		return nil, nil, err
	}
	return multi.WithFields(logging.Fields{"service_name": cfg.AppName}), client, nil
}

// DataSource returns the listing source selected by cfg.
func DataSource(cfg config.DataConfig) dataset.Source {
	if cfg.Source == config.SourcePostgres {
		return dataset.PostgresSource{DSN: cfg.PostgresDSN, Table: cfg.Table}
	}
	return dataset.CSVSource{Path: cfg.Path}
}

// LoadAssets loads the dataset and the model once. Either failure is fatal
// for the caller: a *dataset.DataSourceError or a *model.ModelLoadError.
// A remote model is checked against the first listing before it is accepted.
func LoadAssets(cfg *config.Config, logger logging.Logger) (*Assets, error) {
	data, err := dataset.Load(DataSource(cfg.Data))
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded", logging.Fields{"source": cfg.Data.Source, "listings": data.Len()})

	m, err := model.LoadModel(cfg.ModelPath, referenceRecord(data))
	if err != nil {
		return nil, err
	}
	logger.Info("model loaded", logging.Fields{"path": cfg.ModelPath})

	formatter, err := money.NewFormatter(cfg.Currency.Code, cfg.Currency.Symbol, cfg.Currency.Locale)
	if err != nil {
		return nil, fmt.Errorf("currency settings: %w", err)
	}

	return &Assets{
		Data:     data,
		Model:    m,
		Selector: selector.New(data, selector.YearRange{Min: cfg.Years.Min, Max: cfg.Years.Max}),
		Money:    formatter,
	}, nil
}

// referenceRecord returns the first listing as model input, or nil for an
// empty dataset.
func referenceRecord(data *dataset.Accessor) model.Record {
	head := data.Head(1)
	if len(head) == 0 {
		return nil
	}
	rec, err := model.ToRecord(head[0].Query())
	if err != nil {
		return nil
	}
	return rec
}

// WarmUp prices the first rows of the dataset and logs the estimates.
// Failures are logged, not returned.
func WarmUp(a *Assets, logger logging.Logger, rows int) {
	for i, l := range a.Data.Head(rows) {
		est, err := model.Predict(a.Model, l.Query())
		if err != nil {
			logger.Warn("warm-up prediction failed", logging.Fields{"row": i, "error": err.Error()})
			continue
		}
		logger.Debug("warm-up prediction", logging.Fields{
			"row":      i,
			"listing":  listingLabel(l),
			"price":    l.Price,
			"estimate": float64(est),
		})
	}
}

func listingLabel(l dal.Listing) string {
	return fmt.Sprintf("%s %s %s %d", l.Brand, l.ModelName, l.ModelVariant, l.Year)
}

// New builds the service from cfg.
func New(cfg *config.Config) (*App, error) {
	logger, client, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	appLogger := logger.WithFields(logging.Fields{"component": "app"})

	assets, err := LoadAssets(cfg, appLogger)
	if err != nil {
		appLogger.Error("startup failed", err, nil)
		if client != nil {
			client.Close()
		}
		return nil, err
	}
	WarmUp(assets, appLogger, 5)

	srv := server.NewHTTPServer(server.Options{
		Addr:           cfg.Addr,
		AppName:        cfg.AppName,
		Data:           assets.Data,
		Selector:       assets.Selector,
		Model:          assets.Model,
		Money:          assets.Money,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	return &App{httpServer: srv, logger: appLogger, fluentClient: client}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts the
// server down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", logging.Fields{"addr": a.httpServer.Addr})
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("server failed", err, nil)
			return fmt.Errorf("listen on %s: %w", a.httpServer.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown failed", err, nil)
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("server stopped", nil)
	return nil
}

func (a *App) close() {
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close fluent client: %v\n", err)
		}
	}
}
