package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmony-ledger/harmony/internal/domain"
)

// ObjectRepository persists finance objects. Every method is scoped to an owner.
type ObjectRepository interface {
	Create(ctx context.Context, object *domain.Object) error
	Update(ctx context.Context, object *domain.Object) error
	Delete(ctx context.Context, id, owner int64) error
	GetByIDOwner(ctx context.Context, id, owner int64) (*domain.Object, error)
	ListByOwner(ctx context.Context, owner int64, limit, offset int) ([]domain.Object, error)
	CountByOwner(ctx context.Context, owner int64) (int64, error)
}

type objectRepository struct {
	pool *pgxpool.Pool
}

// NewObjectRepository instantiates repository.
func NewObjectRepository(pool *pgxpool.Pool) ObjectRepository {
	return &objectRepository{pool: pool}
}

func (r *objectRepository) Create(ctx context.Context, object *domain.Object) error {
	const query = `
        INSERT INTO finance_object (owner, symbol, alias, remark)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		object.Owner,
		object.Symbol,
		object.Alias,
		object.Remark,
	).Scan(&object.ID, &object.CreatedAt, &object.UpdatedAt)
}

func (r *objectRepository) Update(ctx context.Context, object *domain.Object) error {
	const query = `
        UPDATE finance_object SET symbol=$1, alias=$2, remark=$3, updated_at=NOW()
        WHERE id=$4 AND owner=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		object.Symbol,
		object.Alias,
		object.Remark,
		object.ID,
		object.Owner,
	).Scan(&object.UpdatedAt)
}

func (r *objectRepository) Delete(ctx context.Context, id, owner int64) error {
	const query = `DELETE FROM finance_object WHERE id=$1 AND owner=$2`
	cmd, err := r.pool.Exec(ctx, query, id, owner)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *objectRepository) GetByIDOwner(ctx context.Context, id, owner int64) (*domain.Object, error) {
	const query = `
        SELECT id, owner, symbol, alias, remark, created_at, updated_at
        FROM finance_object WHERE id=$1 AND owner=$2`
	var object domain.Object
	if err := r.pool.QueryRow(ctx, query, id, owner).Scan(
		&object.ID,
		&object.Owner,
		&object.Symbol,
		&object.Alias,
		&object.Remark,
		&object.CreatedAt,
		&object.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *objectRepository) ListByOwner(ctx context.Context, owner int64, limit, offset int) ([]domain.Object, error) {
	const query = `
        SELECT id, owner, symbol, alias, remark, created_at, updated_at
        FROM finance_object WHERE owner=$1
        ORDER BY id
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objects := make([]domain.Object, 0)
	for rows.Next() {
		var object domain.Object
		if err := rows.Scan(
			&object.ID,
			&object.Owner,
			&object.Symbol,
			&object.Alias,
			&object.Remark,
			&object.CreatedAt,
			&object.UpdatedAt,
		); err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, rows.Err()
}

func (r *objectRepository) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM finance_object WHERE owner=$1`
	var total int64
	err := r.pool.QueryRow(ctx, query, owner).Scan(&total)
	return total, err
}
