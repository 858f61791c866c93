package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmony-ledger/harmony/internal/domain"
)

const uniqueViolation = "23505"

// ErrNicknameTaken is returned when a nickname collides with an existing person.
var ErrNicknameTaken = errors.New("nickname already exists")

// PersonRepository defines persistence access for account holders.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) error
	Update(ctx context.Context, person *domain.Person) error
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	GetByNickname(ctx context.Context, nickname string) (*domain.Person, error)
}

type personRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository returns a Postgres-backed implementation.
func NewPersonRepository(pool *pgxpool.Pool) PersonRepository {
	return &personRepository{pool: pool}
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	const query = `
        INSERT INTO person (nickname, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		person.Nickname,
		person.PasswordHash,
	).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)
	return translateUnique(err)
}

func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	const query = `
        UPDATE person SET nickname=$1, password_hash=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		person.Nickname,
		person.PasswordHash,
		person.ID,
	).Scan(&person.UpdatedAt)
	return translateUnique(err)
}

func (r *personRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	const query = `
        SELECT id, nickname, password_hash, created_at, updated_at
        FROM person WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *personRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Person, error) {
	const query = `
        SELECT id, nickname, password_hash, created_at, updated_at
        FROM person WHERE nickname=$1`
	return r.fetchSingle(ctx, query, nickname)
}

func (r *personRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Person, error) {
	var person domain.Person
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&person.ID,
		&person.Nickname,
		&person.PasswordHash,
		&person.CreatedAt,
		&person.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &person, nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrNicknameTaken
	}
	return err
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
