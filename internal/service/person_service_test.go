package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harmony-ledger/harmony/internal/auth"
	"github.com/harmony-ledger/harmony/internal/clock"
	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/repository"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

const issuedAt int64 = 1_700_000_000_000

func newClaims(t *testing.T) *auth.ClaimManager {
	t.Helper()
	cipher, err := auth.NewFixedNonceCipher([]byte("12345678901234567890123456789012"), []byte("123456789012"))
	require.NoError(t, err)
	return auth.NewClaimManager(cipher, clock.FromMillis(issuedAt))
}

type recorder struct {
	events []events.Event
}

func (r *recorder) subscribe(d events.Dispatcher, types ...events.EventType) {
	for _, et := range types {
		d.Subscribe(et, func(_ context.Context, e events.Event) error {
			r.events = append(r.events, e)
			return nil
		})
	}
}

func newPersonService(t *testing.T, repo *mockPersonRepo) (*PersonService, *auth.ClaimManager, *recorder) {
	t.Helper()
	claims := newClaims(t)
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	rec.subscribe(dispatcher, events.EventPersonRegistered, events.EventPersonUpdated)
	svc := NewPersonService(PersonDependencies{
		PersonRepo: repo,
		Claims:     claims,
		BcryptCost: bcrypt.MinCost,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
	return svc, claims, rec
}

func requireBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, message, domainErr.Message)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func TestPersonServiceRegister(t *testing.T) {
	t.Parallel()

	repo := &mockPersonRepo{}
	svc, claims, rec := newPersonService(t, repo)
	ctx := context.Background()

	repo.On("GetByNickname", ctx, "alice").Return(nil, pgx.ErrNoRows).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Person) bool {
		return p.Nickname == "alice" && auth.ComparePassword(p.PasswordHash, "secret") == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Person).ID = 42
	}).Return(nil).Once()

	person, token, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), person.ID)

	claim, err := claims.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claim{Subject: 42, IssuedAt: issuedAt, ExpiresAt: issuedAt + auth.ClaimTTLMillis}, claim)

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.EventPersonRegistered, rec.events[0].Type)
	repo.AssertExpectations(t)
}

func TestPersonServiceRegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("existing nickname", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, _ := newPersonService(t, repo)
		repo.On("GetByNickname", ctx, "alice").Return(&domain.Person{ID: 1, Nickname: "alice"}, nil).Once()

		_, _, err := svc.Register(ctx, "alice", "secret")
		requireBadRequest(t, err, "nickname already exists")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, rec := newPersonService(t, repo)
		repo.On("GetByNickname", ctx, "alice").Return(nil, pgx.ErrNoRows).Once()
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrNicknameTaken).Once()

		_, _, err := svc.Register(ctx, "alice", "secret")
		requireBadRequest(t, err, "nickname already exists")
		assert.Empty(t, rec.events)
	})
}

func TestPersonServiceRegisterValidatesInput(t *testing.T) {
	t.Parallel()

	repo := &mockPersonRepo{}
	svc, _, _ := newPersonService(t, repo)

	_, _, err := svc.Register(context.Background(), "  ", "secret")
	requireBadRequest(t, err, "nickname cannot be empty")

	_, _, err = svc.Register(context.Background(), "a-very-long-nickname-indeed", "secret")
	requireBadRequest(t, err, "nickname is too long")

	_, _, err = svc.Register(context.Background(), "alice", "")
	requireBadRequest(t, err, "password cannot be empty")

	repo.AssertExpectations(t)
}

func TestPersonServiceLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &mockPersonRepo{}
	svc, claims, _ := newPersonService(t, repo)
	repo.On("GetByNickname", ctx, "alice").Return(&domain.Person{ID: 7, Nickname: "alice", PasswordHash: hashed(t, "secret")}, nil)
	repo.On("GetByNickname", ctx, "bob").Return(nil, pgx.ErrNoRows)

	claim, token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), claim.Subject)
	assert.Equal(t, issuedAt+auth.ClaimTTLMillis, claim.ExpiresAt)
	verified, err := claims.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claim, verified)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	requireBadRequest(t, err, "incorrect nickname or password")

	_, _, err = svc.Login(ctx, "bob", "secret")
	requireBadRequest(t, err, "incorrect nickname or password")
}

func TestPersonServiceLoginPropagatesStorageErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &mockPersonRepo{}
	svc, _, _ := newPersonService(t, repo)
	boom := errors.New("connection reset")
	repo.On("GetByNickname", ctx, "alice").Return(nil, boom)

	_, _, err := svc.Login(ctx, "alice", "secret")
	assert.ErrorIs(t, err, boom)
}

func TestPersonServiceGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &mockPersonRepo{}
	svc, _, _ := newPersonService(t, repo)
	repo.On("GetByID", ctx, int64(1)).Return(&domain.Person{ID: 1, Nickname: "alice"}, nil)
	repo.On("GetByID", ctx, int64(2)).Return(nil, pgx.ErrNoRows)

	person, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", person.Nickname)

	_, err = svc.Get(ctx, 2)
	requireBadRequest(t, err, "person does not exist")
}

func TestPersonServiceUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("unchanged fields are not written", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, rec := newPersonService(t, repo)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Person{ID: 1, Nickname: "alice", PasswordHash: hashed(t, "secret")}, nil)

		nickname, err := svc.Update(ctx, 1, PersonUpdate{Nickname: strPtr("alice"), Password: strPtr("secret")})
		require.NoError(t, err)
		assert.Nil(t, nickname)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Empty(t, rec.events)
	})

	t.Run("nickname change is echoed", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, rec := newPersonService(t, repo)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Person{ID: 1, Nickname: "alice", PasswordHash: hashed(t, "secret")}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Person) bool { return p.Nickname == "alicia" })).Return(nil).Once()

		nickname, err := svc.Update(ctx, 1, PersonUpdate{Nickname: strPtr("alicia")})
		require.NoError(t, err)
		require.NotNil(t, nickname)
		assert.Equal(t, "alicia", *nickname)
		require.Len(t, rec.events, 1)
		assert.Equal(t, events.EventPersonUpdated, rec.events[0].Type)
	})

	t.Run("password change is stored but not echoed", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, _ := newPersonService(t, repo)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Person{ID: 1, Nickname: "alice", PasswordHash: hashed(t, "secret")}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Person) bool {
			return auth.ComparePassword(p.PasswordHash, "changed") == nil
		})).Return(nil).Once()

		nickname, err := svc.Update(ctx, 1, PersonUpdate{Password: strPtr("changed")})
		require.NoError(t, err)
		assert.Nil(t, nickname)
		repo.AssertExpectations(t)
	})

	t.Run("taken nickname", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, _ := newPersonService(t, repo)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Person{ID: 1, Nickname: "alice"}, nil)
		repo.On("Update", ctx, mock.Anything).Return(repository.ErrNicknameTaken)

		_, err := svc.Update(ctx, 1, PersonUpdate{Nickname: strPtr("bob")})
		requireBadRequest(t, err, "nickname already exists")
	})

	t.Run("invalid nickname", func(t *testing.T) {
		repo := &mockPersonRepo{}
		svc, _, _ := newPersonService(t, repo)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Person{ID: 1, Nickname: "alice"}, nil)

		_, err := svc.Update(ctx, 1, PersonUpdate{Nickname: strPtr(" ")})
		requireBadRequest(t, err, "nickname cannot be empty")
	})
}
