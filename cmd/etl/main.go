// cmd/etl/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unclebandit/patoche-etl/internal/config"
	"github.com/unclebandit/patoche-etl/internal/db"
	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
	"github.com/unclebandit/patoche-etl/internal/queue"
	"github.com/unclebandit/patoche-etl/internal/report"
	"github.com/unclebandit/patoche-etl/internal/repository"
	"github.com/unclebandit/patoche-etl/internal/service"
	"github.com/unclebandit/patoche-etl/internal/source"
)

func main() {
	os.Exit(run())
}

// run owns the store connection so that it is closed exactly once on every
// path before the process exits.
func run() int {
	logger, level, err := newLogger()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg := config.Load(logger)
	setLevel(logger, level, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, dialect, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return exitCode(err)
	}
	defer conn.Close()

	notifier, closeNotifier := newNotifier(cfg, logger)
	defer closeNotifier()

	store := &repository.SQLStore{DB: conn}
	reports := &service.ReportRunner{
		Repo: &repository.ReportRepository{DB: conn},
		Out:  os.Stdout,
		Params: service.ReportParams{
			CustomerID:      cfg.ReportCustomerID,
			AmountThreshold: cfg.ReportAmountThreshold,
			CutoffDate:      cfg.ReportCutoffDate,
		},
		Logger: logger,
	}
	if cfg.ReportXLSXPath != "" {
		reports.Exporter = report.NewXLSXExporter(cfg.ReportXLSXPath)
	}

	pipeline := &service.Pipeline{
		Schema:         &db.SchemaManager{DB: conn, Dialect: dialect},
		Customers:      &service.CustomerIngestor{Store: store, Logger: logger},
		Orders:         &service.OrderIngestor{Store: store, Logger: logger},
		Reports:        reports,
		CustomerSource: &source.CSVFile{Path: cfg.CustomersFile},
		OrderSource:    &source.CSVFile{Path: cfg.OrdersFile},
		Notifier:       notifier,
		Topic:          cfg.AMQPQueue,
		Logger:         logger,
	}

	_, err = pipeline.Run(ctx)
	return exitCode(err)
}

// exitCode maps a run error to the process status: only store and schema
// failures end the process with 1.
func exitCode(err error) int {
	if appErrors.IsFatal(err) {
		return 1
	}
	return 0
}

// newLogger builds the production logger once; its level is adjusted after
// the configuration is known.
func newLogger() (*zap.Logger, zap.AtomicLevel, error) {
	cfg := zap.NewProductionConfig()
	logger, err := cfg.Build()
	return logger, cfg.Level, err
}

func setLevel(logger *zap.Logger, level zap.AtomicLevel, text string) {
	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		logger.Warn("invalid LOG_LEVEL, keeping current level",
			zap.String("value", text), zap.Stringer("level", level.Level()))
		return
	}
	level.SetLevel(lvl)
}

// newNotifier returns the AMQP publisher when AMQP_URL is set, otherwise an
// in-memory queue whose only subscriber logs the summary.
func newNotifier(cfg *config.Config, logger *zap.Logger) (queue.Queue, func()) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, logger)
		if err == nil {
			return q, func() {
				if err := q.Close(); err != nil {
					logger.Warn("failed to close AMQP connection", zap.Error(err))
				}
			}
		}
		logger.Warn("AMQP unavailable, run summary stays local", zap.Error(err))
	}

	q := queue.NewInMemoryQueue(logger)
	err := q.Subscribe(cfg.AMQPQueue, func(payload any) error {
		logger.Debug("run summary", zap.Any("summary", payload))
		return nil
	})
	if err != nil {
		logger.Warn("failed to subscribe run summary logger", zap.String("topic", cfg.AMQPQueue), zap.Error(err))
	}
	return q, func() {}
}
