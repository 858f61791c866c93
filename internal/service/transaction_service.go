package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/harmony-ledger/harmony/internal/clock"
	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/repository"
)

// TransactionService records movements inside an owner's trades.
type TransactionService struct {
	transactions repository.TransactionRepository
	trades       repository.TradeRepository
	clock        clock.Clock
	publisher
}

// TransactionDependencies encapsulates requirements for the transaction service.
type TransactionDependencies struct {
	TransactionRepo repository.TransactionRepository
	TradeRepo       repository.TradeRepository
	Clock           clock.Clock
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// TransactionInput describes a new transaction. A nil OccurrenceAt means now.
type TransactionInput struct {
	Quantity      domain.Quantity
	IsBaseToQuote bool
	Alias         *string
	Remark        *string
	OccurrenceAt  *time.Time
}

// TransactionPatch holds the fields to change; nil fields keep their value.
type TransactionPatch struct {
	Quantity      *domain.Quantity
	IsBaseToQuote *bool
	Alias         *string
	Remark        *string
	OccurrenceAt  *time.Time
}

// TransactionPage is one page of a trade's transactions and the trade's total.
type TransactionPage struct {
	Transactions []domain.Transaction
	Total        int64
}

// NewTransactionService constructs the service.
func NewTransactionService(deps TransactionDependencies) *TransactionService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &TransactionService{
		transactions: deps.TransactionRepo,
		trades:       deps.TradeRepo,
		clock:        clk,
		publisher:    publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns the transactions of an owned trade, or only the one matching query.ID.
func (s *TransactionService) List(ctx context.Context, owner, tradeID int64, query ListQuery) (TransactionPage, error) {
	if err := s.checkTrade(ctx, owner, tradeID); err != nil {
		return TransactionPage{}, err
	}

	total, err := s.transactions.CountByTrade(ctx, tradeID)
	if err != nil {
		return TransactionPage{}, err
	}

	if query.ID != nil {
		tx, err := s.get(ctx, tradeID, *query.ID)
		if err != nil {
			return TransactionPage{}, err
		}
		return TransactionPage{Transactions: []domain.Transaction{*tx}, Total: total}, nil
	}

	limit, offset := Paginate(query.Page, query.PageSize)
	txs, err := s.transactions.ListByTrade(ctx, tradeID, limit, offset)
	if err != nil {
		return TransactionPage{}, err
	}
	return TransactionPage{Transactions: txs, Total: total}, nil
}

// Create records a transaction in an owned trade.
func (s *TransactionService) Create(ctx context.Context, owner, tradeID int64, input TransactionInput) (*domain.Transaction, error) {
	if err := s.checkTrade(ctx, owner, tradeID); err != nil {
		return nil, err
	}

	occurrenceAt := s.clock.Now().UTC()
	if input.OccurrenceAt != nil {
		occurrenceAt = input.OccurrenceAt.UTC()
	}

	tx := &domain.Transaction{
		TradeID:       tradeID,
		Quantity:      input.Quantity,
		IsBaseToQuote: input.IsBaseToQuote,
		Alias:         input.Alias,
		Remark:        input.Remark,
		OccurrenceAt:  occurrenceAt,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventTransactionCreated, owner, tx.ID, transactionPayload(tx)))
	return tx, nil
}

// Update merges patch into transaction id of an owned trade.
func (s *TransactionService) Update(ctx context.Context, owner, tradeID, id int64, patch TransactionPatch) (*domain.Transaction, error) {
	if err := s.checkTrade(ctx, owner, tradeID); err != nil {
		return nil, err
	}
	tx, err := s.get(ctx, tradeID, id)
	if err != nil {
		return nil, err
	}

	if patch.Quantity != nil {
		tx.Quantity = *patch.Quantity
	}
	if patch.IsBaseToQuote != nil {
		tx.IsBaseToQuote = *patch.IsBaseToQuote
	}
	if patch.Alias != nil {
		tx.Alias = patch.Alias
	}
	if patch.Remark != nil {
		tx.Remark = patch.Remark
	}
	if patch.OccurrenceAt != nil {
		tx.OccurrenceAt = patch.OccurrenceAt.UTC()
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, notFound(err, "transaction", id)
	}
	s.publish(ctx, events.New(events.EventTransactionUpdated, owner, id, transactionPayload(tx)))
	return tx, nil
}

// Delete removes transaction id of an owned trade and returns it as it was.
func (s *TransactionService) Delete(ctx context.Context, owner, tradeID, id int64) (*domain.Transaction, error) {
	if err := s.checkTrade(ctx, owner, tradeID); err != nil {
		return nil, err
	}
	tx, err := s.get(ctx, tradeID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transactions.Delete(ctx, id, tradeID); err != nil {
		return nil, notFound(err, "transaction", id)
	}
	s.publish(ctx, events.New(events.EventTransactionDeleted, owner, id, transactionPayload(tx)))
	return tx, nil
}

func (s *TransactionService) checkTrade(ctx context.Context, owner, tradeID int64) error {
	if _, err := s.trades.GetByIDOwner(ctx, tradeID, owner); err != nil {
		return notFound(err, "trade", tradeID)
	}
	return nil
}

func (s *TransactionService) get(ctx context.Context, tradeID, id int64) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByIDTrade(ctx, id, tradeID)
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return tx, nil
}

func transactionPayload(tx *domain.Transaction) events.TransactionPayload {
	return events.TransactionPayload{
		TradeID:       tx.TradeID,
		Quantity:      tx.Quantity.String(),
		IsBaseToQuote: tx.IsBaseToQuote,
	}
}
