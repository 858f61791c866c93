package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/repository"
)

// TradeService manages trades between two objects of the same owner.
type TradeService struct {
	trades  repository.TradeRepository
	objects repository.ObjectRepository
	publisher
}

// TradeDependencies encapsulates requirements for the trade service.
type TradeDependencies struct {
	TradeRepo  repository.TradeRepository
	ObjectRepo repository.ObjectRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TradeInput describes a new trade.
type TradeInput struct {
	BaseObjectID  int64
	QuoteObjectID int64
	Alias         *string
	Remark        *string
}

// TradePatch holds the fields to change; nil fields keep their value.
type TradePatch struct {
	BaseObjectID  *int64
	QuoteObjectID *int64
	Alias         *string
	Remark        *string
}

// TradePage is one page of an owner's trades and the owner's total.
type TradePage struct {
	Trades []domain.Trade
	Total  int64
}

// NewTradeService constructs the service.
func NewTradeService(deps TradeDependencies) *TradeService {
	return &TradeService{
		trades:    deps.TradeRepo,
		objects:   deps.ObjectRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns the owner's trades, or only the one matching query.ID.
func (s *TradeService) List(ctx context.Context, owner int64, query ListQuery) (TradePage, error) {
	total, err := s.trades.CountByOwner(ctx, owner)
	if err != nil {
		return TradePage{}, err
	}

	if query.ID != nil {
		trade, err := s.Get(ctx, owner, *query.ID)
		if err != nil {
			return TradePage{}, err
		}
		return TradePage{Trades: []domain.Trade{*trade}, Total: total}, nil
	}

	limit, offset := Paginate(query.Page, query.PageSize)
	trades, err := s.trades.ListByOwner(ctx, owner, limit, offset)
	if err != nil {
		return TradePage{}, err
	}
	return TradePage{Trades: trades, Total: total}, nil
}

// Get returns one owned trade.
func (s *TradeService) Get(ctx context.Context, owner, id int64) (*domain.Trade, error) {
	trade, err := s.trades.GetByIDOwner(ctx, id, owner)
	if err != nil {
		return nil, notFound(err, "trade", id)
	}
	return trade, nil
}

// Create stores a trade after checking that both objects belong to owner.
func (s *TradeService) Create(ctx context.Context, owner int64, input TradeInput) (*domain.Trade, error) {
	if err := s.checkObjects(ctx, owner, input.BaseObjectID, input.QuoteObjectID); err != nil {
		return nil, err
	}

	trade := &domain.Trade{
		Owner:         owner,
		BaseObjectID:  input.BaseObjectID,
		QuoteObjectID: input.QuoteObjectID,
		Alias:         input.Alias,
		Remark:        input.Remark,
	}
	if err := s.trades.Create(ctx, trade); err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventTradeCreated, owner, trade.ID, tradePayload(trade)))
	return trade, nil
}

// Update merges patch into the owned trade id. Replacement objects must also
// belong to owner.
func (s *TradeService) Update(ctx context.Context, owner, id int64, patch TradePatch) (*domain.Trade, error) {
	trade, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.BaseObjectID != nil {
		trade.BaseObjectID = *patch.BaseObjectID
	}
	if patch.QuoteObjectID != nil {
		trade.QuoteObjectID = *patch.QuoteObjectID
	}
	if patch.Alias != nil {
		trade.Alias = patch.Alias
	}
	if patch.Remark != nil {
		trade.Remark = patch.Remark
	}

	if patch.BaseObjectID != nil || patch.QuoteObjectID != nil {
		if err := s.checkObjects(ctx, owner, trade.BaseObjectID, trade.QuoteObjectID); err != nil {
			return nil, err
		}
	}

	if err := s.trades.Update(ctx, trade); err != nil {
		return nil, notFound(err, "trade", id)
	}
	s.publish(ctx, events.New(events.EventTradeUpdated, owner, id, tradePayload(trade)))
	return trade, nil
}

// Delete removes the owned trade id and returns it as it was.
func (s *TradeService) Delete(ctx context.Context, owner, id int64) (*domain.Trade, error) {
	trade, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := s.trades.Delete(ctx, id, owner); err != nil {
		return nil, notFound(err, "trade", id)
	}
	s.publish(ctx, events.New(events.EventTradeDeleted, owner, id, tradePayload(trade)))
	return trade, nil
}

func (s *TradeService) checkObjects(ctx context.Context, owner int64, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.objects.GetByIDOwner(ctx, id, owner); err != nil {
			return notFound(err, "object", id)
		}
	}
	return nil
}

func tradePayload(trade *domain.Trade) events.TradePayload {
	return events.TradePayload{BaseObjectID: trade.BaseObjectID, QuoteObjectID: trade.QuoteObjectID}
}
