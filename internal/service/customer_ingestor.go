package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
	"github.com/unclebandit/patoche-etl/internal/model"
	"github.com/unclebandit/patoche-etl/internal/repository"
	"github.com/unclebandit/patoche-etl/internal/source"
	"github.com/unclebandit/patoche-etl/internal/validation"
)

// customerFields is the column count of a customer file:
// id (ignored), last name, first name, email, phone, birth date, address, consent.
const customerFields = 8

// CustomerIngestor loads a customer file, skipping rows already stored and
// rows whose birth date is not a valid calendar date.
type CustomerIngestor struct {
	Store      repository.Store
	Logger     *zap.Logger
	DateLayout string
}

func (i *CustomerIngestor) Ingest(ctx context.Context, src source.Source) *StageResult {
	return ingestFile(ctx, i.Store, src, "customers", i.Logger, i.ingestRecord)
}

func (i *CustomerIngestor) ingestRecord(ctx context.Context, uow repository.UnitOfWork, rec []string, line int) (Outcome, error) {
	c, err := parseCustomer(rec, line)
	if err != nil {
		return 0, err
	}

	exists, err := uow.Customers().Exists(ctx, c)
	if err != nil {
		return 0, err
	}
	if exists {
		return OutcomeDuplicate, nil
	}

	if !validation.IsValidDate(c.BirthDate, i.DateLayout) {
		return OutcomeInvalidDate, nil
	}

	if err := uow.Customers().Create(ctx, c); err != nil {
		return 0, err
	}
	return OutcomeInserted, nil
}

func parseCustomer(rec []string, line int) (*model.Customer, error) {
	if len(rec) < customerFields {
		return nil, appErrors.NewMalformedRecord(line, "record", strings.Join(rec, ","), nil)
	}

	consent, err := strconv.Atoi(strings.TrimSpace(rec[7]))
	if err != nil {
		return nil, appErrors.NewMalformedRecord(line, "marketing consent", rec[7], err)
	}

	return &model.Customer{
		LastName:         rec[1],
		FirstName:        rec[2],
		Email:            rec[3],
		Phone:            rec[4],
		BirthDate:        rec[5],
		Address:          rec[6],
		MarketingConsent: consent,
	}, nil
}
