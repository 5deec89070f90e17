package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
	"github.com/unclebandit/patoche-etl/internal/repository"
	"github.com/unclebandit/patoche-etl/internal/source"
)

// Outcome is what happened to one candidate record. None of them is an error.
type Outcome int

const (
	OutcomeInserted Outcome = iota
	OutcomeDuplicate
	OutcomeInvalidDate
	OutcomeUnknownCustomer
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeInvalidDate:
		return "invalid_date"
	case OutcomeUnknownCustomer:
		return "unknown_customer"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// StageResult tallies one ingestion stage. Err is set when the stage was
// skipped (missing file) or abandoned part way through.
type StageResult struct {
	Stage            string `json:"stage"`
	Source           string `json:"source"`
	Inserted         int    `json:"inserted"`
	Duplicates       int    `json:"duplicates"`
	InvalidDates     int    `json:"invalid_dates"`
	UnknownCustomers int    `json:"unknown_customers"`
	Committed        bool   `json:"committed"`
	Err              error  `json:"-"`
	Error            string `json:"error,omitempty"`
}

// Skipped reports whether the stage never ran because its source was absent.
func (r *StageResult) Skipped() bool {
	return errors.Is(r.Err, appErrors.ErrSourceNotFound)
}

func (r *StageResult) tally(o Outcome) {
	switch o {
	case OutcomeInserted:
		r.Inserted++
	case OutcomeDuplicate:
		r.Duplicates++
	case OutcomeInvalidDate:
		r.InvalidDates++
	case OutcomeUnknownCustomer:
		r.UnknownCustomers++
	}
}

func (r *StageResult) fail(err error) {
	r.Err = err
	r.Error = err.Error()
}

// recordFunc handles one data record inside the file's unit of work.
// line is the 1-based record number, header included.
type recordFunc func(ctx context.Context, uow repository.UnitOfWork, rec []string, line int) (Outcome, error)

// ingestFile drives one source file through handle. The header record is
// discarded. Each record runs in its own savepoint. Any error from reading or
// handling abandons the rest of the file; rows inserted before that are still
// committed.
func ingestFile(ctx context.Context, store repository.Store, src source.Source, stage string, logger *zap.Logger, handle recordFunc) *StageResult {
	res := &StageResult{Stage: stage, Source: src.Name()}
	log := logger.With(zap.String("stage", stage), zap.String("file", src.Name()))

	reader, err := src.Open()
	if err != nil {
		res.fail(err)
		if errors.Is(err, appErrors.ErrSourceNotFound) {
			log.Warn("source file not found, please check its location")
		} else {
			log.Error("failed to open source file", zap.Error(err))
		}
		return res
	}
	defer reader.Close()

	uow, err := store.Begin(ctx)
	if err != nil {
		res.fail(fmt.Errorf("begin transaction: %w", err))
		log.Error("failed to process file", zap.Error(res.Err))
		return res
	}

	stageErr := func() error {
		// header
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		for line := 2; ; line++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			var outcome Outcome
			err = uow.InSavepoint(ctx, func() error {
				var err error
				outcome, err = handle(ctx, uow, rec, line)
				return err
			})
			if err != nil {
				return err
			}
			res.tally(outcome)
			if outcome != OutcomeInserted {
				log.Debug("record skipped", zap.Int("line", line), zap.Stringer("outcome", outcome))
			}
		}
	}()

	if res.Inserted > 0 {
		if err := uow.Commit(); err != nil {
			stageErr = errors.Join(stageErr, fmt.Errorf("commit: %w", err))
		} else {
			res.Committed = true
		}
	} else {
		_ = uow.Rollback()
	}

	if stageErr != nil {
		res.fail(stageErr)
		log.Error("failed to process file, remaining records abandoned",
			zap.Error(stageErr), zap.Int("inserted", res.Inserted), zap.Bool("committed", res.Committed))
		return res
	}

	log.Info("file processed",
		zap.Int("inserted", res.Inserted),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("invalid_dates", res.InvalidDates),
		zap.Int("unknown_customers", res.UnknownCustomers))
	return res
}
