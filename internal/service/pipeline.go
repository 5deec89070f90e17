package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unclebandit/patoche-etl/internal/queue"
	"github.com/unclebandit/patoche-etl/internal/source"
)

// SchemaManager prepares the store before anything is ingested.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}

// RunSummary describes one pipeline run. It is also the payload published
// on the run-summary topic.
type RunSummary struct {
	RunID       string       `json:"run_id"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
	Customers   *StageResult `json:"customers"`
	Orders      *StageResult `json:"orders"`
	ReportError string       `json:"report_error,omitempty"`
}

// Pipeline runs schema setup, customer ingestion, order ingestion and the
// reports, strictly in that order.
type Pipeline struct {
	Schema         SchemaManager
	Customers      *CustomerIngestor
	Orders         *OrderIngestor
	Reports        *ReportRunner
	CustomerSource source.Source
	OrderSource    source.Source

	// Notifier is optional; when set the summary is published on Topic.
	Notifier queue.Queue
	Topic    string
	Logger   *zap.Logger
}

// Run returns an error only when the schema cannot be prepared. Stage
// failures are reported in the summary and do not stop later stages.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{RunID: uuid.NewString(), StartedAt: time.Now()}
	log := p.Logger.With(zap.String("run_id", summary.RunID))

	if err := p.Schema.EnsureSchema(ctx); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return nil, err
	}
	log.Info("schema ready")

	summary.Customers = p.Customers.Ingest(ctx, p.CustomerSource)
	summary.Orders = p.Orders.Ingest(ctx, p.OrderSource)

	if p.Reports != nil {
		if err := p.Reports.Run(ctx); err != nil {
			summary.ReportError = err.Error()
		}
	}

	summary.FinishedAt = time.Now()
	log.Info("run finished",
		zap.Int("customers_inserted", summary.Customers.Inserted),
		zap.Int("orders_inserted", summary.Orders.Inserted),
		zap.Bool("customers_failed", summary.Customers.Err != nil),
		zap.Bool("orders_failed", summary.Orders.Err != nil),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)))

	if p.Notifier != nil {
		if err := p.Notifier.Publish(p.Topic, summary); err != nil {
			log.Warn("failed to publish run summary", zap.String("topic", p.Topic), zap.Error(err))
		}
	}
	return summary, nil
}
