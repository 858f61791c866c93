package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/harmony-ledger/harmony/internal/domain"
)

type mockPersonRepo struct{ mock.Mock }

func (m *mockPersonRepo) Create(ctx context.Context, person *domain.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *mockPersonRepo) Update(ctx context.Context, person *domain.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *mockPersonRepo) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	args := m.Called(ctx, id)
	person, _ := args.Get(0).(*domain.Person)
	return person, args.Error(1)
}

func (m *mockPersonRepo) GetByNickname(ctx context.Context, nickname string) (*domain.Person, error) {
	args := m.Called(ctx, nickname)
	person, _ := args.Get(0).(*domain.Person)
	return person, args.Error(1)
}

type mockObjectRepo struct{ mock.Mock }

func (m *mockObjectRepo) Create(ctx context.Context, object *domain.Object) error {
	args := m.Called(ctx, object)
	return args.Error(0)
}

func (m *mockObjectRepo) Update(ctx context.Context, object *domain.Object) error {
	args := m.Called(ctx, object)
	return args.Error(0)
}

func (m *mockObjectRepo) Delete(ctx context.Context, id, owner int64) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *mockObjectRepo) GetByIDOwner(ctx context.Context, id, owner int64) (*domain.Object, error) {
	args := m.Called(ctx, id, owner)
	object, _ := args.Get(0).(*domain.Object)
	return object, args.Error(1)
}

func (m *mockObjectRepo) ListByOwner(ctx context.Context, owner int64, limit, offset int) ([]domain.Object, error) {
	args := m.Called(ctx, owner, limit, offset)
	objects, _ := args.Get(0).([]domain.Object)
	return objects, args.Error(1)
}

func (m *mockObjectRepo) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

type mockTradeRepo struct{ mock.Mock }

func (m *mockTradeRepo) Create(ctx context.Context, trade *domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *mockTradeRepo) Update(ctx context.Context, trade *domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *mockTradeRepo) Delete(ctx context.Context, id, owner int64) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *mockTradeRepo) GetByIDOwner(ctx context.Context, id, owner int64) (*domain.Trade, error) {
	args := m.Called(ctx, id, owner)
	trade, _ := args.Get(0).(*domain.Trade)
	return trade, args.Error(1)
}

func (m *mockTradeRepo) ListByOwner(ctx context.Context, owner int64, limit, offset int) ([]domain.Trade, error) {
	args := m.Called(ctx, owner, limit, offset)
	trades, _ := args.Get(0).([]domain.Trade)
	return trades, args.Error(1)
}

func (m *mockTradeRepo) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id, tradeID int64) error {
	args := m.Called(ctx, id, tradeID)
	return args.Error(0)
}

func (m *mockTransactionRepo) GetByIDTrade(ctx context.Context, id, tradeID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id, tradeID)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepo) ListByTrade(ctx context.Context, tradeID int64, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, tradeID, limit, offset)
	txs, _ := args.Get(0).([]domain.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionRepo) CountByTrade(ctx context.Context, tradeID int64) (int64, error) {
	args := m.Called(ctx, tradeID)
	return args.Get(0).(int64), args.Error(1)
}
