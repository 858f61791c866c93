package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmony-ledger/harmony/internal/domain"
)

// TradeRepository persists trades. Every method is scoped to an owner.
type TradeRepository interface {
	Create(ctx context.Context, trade *domain.Trade) error
	Update(ctx context.Context, trade *domain.Trade) error
	Delete(ctx context.Context, id, owner int64) error
	GetByIDOwner(ctx context.Context, id, owner int64) (*domain.Trade, error)
	ListByOwner(ctx context.Context, owner int64, limit, offset int) ([]domain.Trade, error)
	CountByOwner(ctx context.Context, owner int64) (int64, error)
}

type tradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository instantiates repository.
func NewTradeRepository(pool *pgxpool.Pool) TradeRepository {
	return &tradeRepository{pool: pool}
}

const tradeColumns = `id, owner, base_object_id, quote_object_id, alias, remark, created_at, updated_at`

func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	const query = `
        INSERT INTO finance_trade (owner, base_object_id, quote_object_id, alias, remark)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		trade.Owner,
		trade.BaseObjectID,
		trade.QuoteObjectID,
		trade.Alias,
		trade.Remark,
	).Scan(&trade.ID, &trade.CreatedAt, &trade.UpdatedAt)
}

func (r *tradeRepository) Update(ctx context.Context, trade *domain.Trade) error {
	const query = `
        UPDATE finance_trade SET base_object_id=$1, quote_object_id=$2, alias=$3, remark=$4, updated_at=NOW()
        WHERE id=$5 AND owner=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		trade.BaseObjectID,
		trade.QuoteObjectID,
		trade.Alias,
		trade.Remark,
		trade.ID,
		trade.Owner,
	).Scan(&trade.UpdatedAt)
}

func (r *tradeRepository) Delete(ctx context.Context, id, owner int64) error {
	const query = `DELETE FROM finance_trade WHERE id=$1 AND owner=$2`
	cmd, err := r.pool.Exec(ctx, query, id, owner)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tradeRepository) GetByIDOwner(ctx context.Context, id, owner int64) (*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM finance_trade WHERE id=$1 AND owner=$2`
	trade, err := scanTrade(r.pool.QueryRow(ctx, query, id, owner))
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) ListByOwner(ctx context.Context, owner int64, limit, offset int) ([]domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM finance_trade WHERE owner=$1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

func (r *tradeRepository) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM finance_trade WHERE owner=$1`
	var total int64
	err := r.pool.QueryRow(ctx, query, owner).Scan(&total)
	return total, err
}

func scanTrade(row pgx.Row) (domain.Trade, error) {
	var trade domain.Trade
	err := row.Scan(
		&trade.ID,
		&trade.Owner,
		&trade.BaseObjectID,
		&trade.QuoteObjectID,
		&trade.Alias,
		&trade.Remark,
		&trade.CreatedAt,
		&trade.UpdatedAt,
	)
	return trade, err
}
