package http

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/repository"
)

// store is an in-memory stand-in for Postgres shared by the fake repositories.
type store struct {
	mu      sync.Mutex
	calls   int
	nextID  int64
	persons map[int64]domain.Person
	objects map[int64]domain.Object
	trades  map[int64]domain.Trade
	txs     map[int64]domain.Transaction
}

func newStore() *store {
	return &store{
		persons: map[int64]domain.Person{},
		objects: map[int64]domain.Object{},
		trades:  map[int64]domain.Trade{},
		txs:     map[int64]domain.Transaction{},
	}
}

func (s *store) begin() func() {
	s.mu.Lock()
	s.calls++
	return s.mu.Unlock
}

func (s *store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakePersons struct{ *store }

func (f fakePersons) Create(_ context.Context, p *domain.Person) error {
	defer f.begin()()
	for _, existing := range f.persons {
		if existing.Nickname == p.Nickname {
			return repository.ErrNicknameTaken
		}
	}
	p.ID = f.id()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.persons[p.ID] = *p
	return nil
}

func (f fakePersons) Update(_ context.Context, p *domain.Person) error {
	defer f.begin()()
	if _, ok := f.persons[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range f.persons {
		if id != p.ID && existing.Nickname == p.Nickname {
			return repository.ErrNicknameTaken
		}
	}
	p.UpdatedAt = time.Now().UTC()
	f.persons[p.ID] = *p
	return nil
}

func (f fakePersons) GetByID(_ context.Context, id int64) (*domain.Person, error) {
	defer f.begin()()
	p, ok := f.persons[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (f fakePersons) GetByNickname(_ context.Context, nickname string) (*domain.Person, error) {
	defer f.begin()()
	for _, p := range f.persons {
		if p.Nickname == nickname {
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeObjects struct{ *store }

func (f fakeObjects) Create(_ context.Context, o *domain.Object) error {
	defer f.begin()()
	o.ID = f.id()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	f.objects[o.ID] = *o
	return nil
}

func (f fakeObjects) Update(_ context.Context, o *domain.Object) error {
	defer f.begin()()
	if existing, ok := f.objects[o.ID]; !ok || existing.Owner != o.Owner {
		return pgx.ErrNoRows
	}
	f.objects[o.ID] = *o
	return nil
}

func (f fakeObjects) Delete(_ context.Context, id, owner int64) error {
	defer f.begin()()
	if existing, ok := f.objects[id]; !ok || existing.Owner != owner {
		return pgx.ErrNoRows
	}
	delete(f.objects, id)
	return nil
}

func (f fakeObjects) GetByIDOwner(_ context.Context, id, owner int64) (*domain.Object, error) {
	defer f.begin()()
	o, ok := f.objects[id]
	if !ok || o.Owner != owner {
		return nil, pgx.ErrNoRows
	}
	return &o, nil
}

func (f fakeObjects) owned(owner int64) []domain.Object {
	result := []domain.Object{}
	for _, o := range f.objects {
		if o.Owner == owner {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (f fakeObjects) ListByOwner(_ context.Context, owner int64, limit, offset int) ([]domain.Object, error) {
	defer f.begin()()
	return window(f.owned(owner), limit, offset), nil
}

func (f fakeObjects) CountByOwner(_ context.Context, owner int64) (int64, error) {
	defer f.begin()()
	return int64(len(f.owned(owner))), nil
}

type fakeTrades struct{ *store }

func (f fakeTrades) Create(_ context.Context, t *domain.Trade) error {
	defer f.begin()()
	t.ID = f.id()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	f.trades[t.ID] = *t
	return nil
}

func (f fakeTrades) Update(_ context.Context, t *domain.Trade) error {
	defer f.begin()()
	if existing, ok := f.trades[t.ID]; !ok || existing.Owner != t.Owner {
		return pgx.ErrNoRows
	}
	f.trades[t.ID] = *t
	return nil
}

func (f fakeTrades) Delete(_ context.Context, id, owner int64) error {
	defer f.begin()()
	if existing, ok := f.trades[id]; !ok || existing.Owner != owner {
		return pgx.ErrNoRows
	}
	delete(f.trades, id)
	return nil
}

func (f fakeTrades) GetByIDOwner(_ context.Context, id, owner int64) (*domain.Trade, error) {
	defer f.begin()()
	t, ok := f.trades[id]
	if !ok || t.Owner != owner {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (f fakeTrades) owned(owner int64) []domain.Trade {
	result := []domain.Trade{}
	for _, t := range f.trades {
		if t.Owner == owner {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (f fakeTrades) ListByOwner(_ context.Context, owner int64, limit, offset int) ([]domain.Trade, error) {
	defer f.begin()()
	return window(f.owned(owner), limit, offset), nil
}

func (f fakeTrades) CountByOwner(_ context.Context, owner int64) (int64, error) {
	defer f.begin()()
	return int64(len(f.owned(owner))), nil
}

type fakeTransactions struct{ *store }

func (f fakeTransactions) Create(_ context.Context, tx *domain.Transaction) error {
	defer f.begin()()
	tx.ID = f.id()
	tx.CreatedAt = time.Now().UTC()
	tx.UpdatedAt = tx.CreatedAt
	f.txs[tx.ID] = *tx
	return nil
}

func (f fakeTransactions) Update(_ context.Context, tx *domain.Transaction) error {
	defer f.begin()()
	if existing, ok := f.txs[tx.ID]; !ok || existing.TradeID != tx.TradeID {
		return pgx.ErrNoRows
	}
	f.txs[tx.ID] = *tx
	return nil
}

func (f fakeTransactions) Delete(_ context.Context, id, tradeID int64) error {
	defer f.begin()()
	if existing, ok := f.txs[id]; !ok || existing.TradeID != tradeID {
		return pgx.ErrNoRows
	}
	delete(f.txs, id)
	return nil
}

func (f fakeTransactions) GetByIDTrade(_ context.Context, id, tradeID int64) (*domain.Transaction, error) {
	defer f.begin()()
	tx, ok := f.txs[id]
	if !ok || tx.TradeID != tradeID {
		return nil, pgx.ErrNoRows
	}
	return &tx, nil
}

func (f fakeTransactions) inTrade(tradeID int64) []domain.Transaction {
	result := []domain.Transaction{}
	for _, tx := range f.txs {
		if tx.TradeID == tradeID {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (f fakeTransactions) ListByTrade(_ context.Context, tradeID int64, limit, offset int) ([]domain.Transaction, error) {
	defer f.begin()()
	return window(f.inTrade(tradeID), limit, offset), nil
}

func (f fakeTransactions) CountByTrade(_ context.Context, tradeID int64) (int64, error) {
	defer f.begin()()
	return int64(len(f.inTrade(tradeID))), nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
