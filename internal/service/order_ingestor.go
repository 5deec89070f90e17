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

// orderFields is the column count of an order file:
// id (ignored), customer id, order date, amount.
const orderFields = 4

// OrderIngestor loads an order file. It must run after customers are loaded:
// orders whose customer is not stored are dropped.
type OrderIngestor struct {
	Store      repository.Store
	Logger     *zap.Logger
	DateLayout string
}

func (i *OrderIngestor) Ingest(ctx context.Context, src source.Source) *StageResult {
	return ingestFile(ctx, i.Store, src, "orders", i.Logger, i.ingestRecord)
}

func (i *OrderIngestor) ingestRecord(ctx context.Context, uow repository.UnitOfWork, rec []string, line int) (Outcome, error) {
	o, err := parseOrder(rec, line)
	if err != nil {
		return 0, err
	}

	known, err := uow.Customers().ExistsByID(ctx, o.CustomerID)
	if err != nil {
		return 0, err
	}
	if !known {
		return OutcomeUnknownCustomer, nil
	}

	exists, err := uow.Orders().Exists(ctx, o)
	if err != nil {
		return 0, err
	}
	if exists {
		i.Logger.Info("order already exists, skipping",
			zap.Int("customer_id", o.CustomerID),
			zap.String("order_date", o.OrderDate))
		return OutcomeDuplicate, nil
	}

	if !validation.IsValidDate(o.OrderDate, i.DateLayout) {
		return OutcomeInvalidDate, nil
	}

	if err := uow.Orders().Create(ctx, o); err != nil {
		return 0, err
	}
	return OutcomeInserted, nil
}

func parseOrder(rec []string, line int) (*model.Order, error) {
	if len(rec) < orderFields {
		return nil, appErrors.NewMalformedRecord(line, "record", strings.Join(rec, ","), nil)
	}

	customerID, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return nil, appErrors.NewMalformedRecord(line, "customer id", rec[1], err)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return nil, appErrors.NewMalformedRecord(line, "amount", rec[3], err)
	}

	return &model.Order{
		CustomerID: customerID,
		OrderDate:  rec[2],
		Amount:     amount,
	}, nil
}
