package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmony-ledger/harmony/internal/domain"
)

// TransactionRepository persists trade transactions. Callers establish trade
// ownership before reaching it; every method is scoped to a trade.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id, tradeID int64) error
	GetByIDTrade(ctx context.Context, id, tradeID int64) (*domain.Transaction, error)
	ListByTrade(ctx context.Context, tradeID int64, limit, offset int) ([]domain.Transaction, error)
	CountByTrade(ctx context.Context, tradeID int64) (int64, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

// quantity is read back as text so NUMERIC precision survives the round trip.
const transactionColumns = `id, trade_id, quantity::text, is_base_to_quote, alias, remark, occurrence_at, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO finance_trade_transaction (trade_id, quantity, is_base_to_quote, alias, remark, occurrence_at)
        VALUES ($1, $2::numeric, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		tx.TradeID,
		tx.Quantity.String(),
		tx.IsBaseToQuote,
		tx.Alias,
		tx.Remark,
		tx.OccurrenceAt,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        UPDATE finance_trade_transaction
        SET quantity=$1::numeric, is_base_to_quote=$2, alias=$3, remark=$4, occurrence_at=$5, updated_at=NOW()
        WHERE id=$6 AND trade_id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		tx.Quantity.String(),
		tx.IsBaseToQuote,
		tx.Alias,
		tx.Remark,
		tx.OccurrenceAt,
		tx.ID,
		tx.TradeID,
	).Scan(&tx.UpdatedAt)
}

func (r *transactionRepository) Delete(ctx context.Context, id, tradeID int64) error {
	const query = `DELETE FROM finance_trade_transaction WHERE id=$1 AND trade_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, tradeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *transactionRepository) GetByIDTrade(ctx context.Context, id, tradeID int64) (*domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM finance_trade_transaction WHERE id=$1 AND trade_id=$2`
	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id, tradeID))
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) ListByTrade(ctx context.Context, tradeID int64, limit, offset int) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM finance_trade_transaction
        WHERE trade_id=$1 ORDER BY occurrence_at, id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, tradeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (r *transactionRepository) CountByTrade(ctx context.Context, tradeID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM finance_trade_transaction WHERE trade_id=$1`
	var total int64
	err := r.pool.QueryRow(ctx, query, tradeID).Scan(&total)
	return total, err
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var (
		tx       domain.Transaction
		quantity string
	)
	err := row.Scan(
		&tx.ID,
		&tx.TradeID,
		&quantity,
		&tx.IsBaseToQuote,
		&tx.Alias,
		&tx.Remark,
		&tx.OccurrenceAt,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	tx.Quantity = domain.Quantity(quantity)
	return tx, err
}
