package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/harmony-ledger/harmony/internal/auth"
	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/repository"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

var (
	errNicknameExists    = apperrors.NewBadRequest("nickname already exists")
	errPersonMissing     = apperrors.NewBadRequest("person does not exist")
	errIncorrectPassword = apperrors.NewBadRequest("incorrect nickname or password")
)

// PersonService coordinates registration, login and profile changes.
type PersonService struct {
	persons    repository.PersonRepository
	claims     *auth.ClaimManager
	bcryptCost int
	publisher
}

// PersonDependencies encapsulates requirements for the person service.
type PersonDependencies struct {
	PersonRepo repository.PersonRepository
	Claims     *auth.ClaimManager
	BcryptCost int
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// PersonUpdate carries the optional fields of a profile change.
type PersonUpdate struct {
	Nickname *string
	Password *string
}

// NewPersonService builds the service.
func NewPersonService(deps PersonDependencies) *PersonService {
	return &PersonService{
		persons:    deps.PersonRepo,
		claims:     deps.Claims,
		bcryptCost: deps.BcryptCost,
		publisher:  publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Register creates a person and issues its first claim.
func (s *PersonService) Register(ctx context.Context, nickname, password string) (*domain.Person, string, error) {
	if err := validateCredentials(nickname, password); err != nil {
		return nil, "", err
	}

	if _, err := s.persons.GetByNickname(ctx, nickname); err == nil {
		return nil, "", errNicknameExists
	} else if !repository.IsNotFound(err) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	person := &domain.Person{Nickname: nickname, PasswordHash: hash}
	if err := s.persons.Create(ctx, person); err != nil {
		if errors.Is(err, repository.ErrNicknameTaken) {
			return nil, "", errNicknameExists
		}
		return nil, "", err
	}

	_, token, err := s.claims.Issue(person.ID)
	if err != nil {
		return nil, "", err
	}
	s.publish(ctx, events.New(events.EventPersonRegistered, person.ID, person.ID, nil))
	return person, token, nil
}

// Login exchanges a nickname and password for a fresh claim.
func (s *PersonService) Login(ctx context.Context, nickname, password string) (auth.Claim, string, error) {
	if err := validateCredentials(nickname, password); err != nil {
		return auth.Claim{}, "", err
	}

	person, err := s.persons.GetByNickname(ctx, nickname)
	if err != nil {
		if repository.IsNotFound(err) {
			return auth.Claim{}, "", errIncorrectPassword
		}
		return auth.Claim{}, "", err
	}
	if err := auth.ComparePassword(person.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return auth.Claim{}, "", errIncorrectPassword
		}
		return auth.Claim{}, "", err
	}

	return s.claims.Issue(person.ID)
}

// Get returns a person by id.
func (s *PersonService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	person, err := s.persons.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errPersonMissing
		}
		return nil, err
	}
	return person, nil
}

// Update applies the given changes to person id. It returns the new nickname
// when it changed and nil otherwise. Nothing is written if no field changed.
func (s *PersonService) Update(ctx context.Context, id int64, input PersonUpdate) (*string, error) {
	person, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		changed  bool
		nickname *string
	)

	if input.Nickname != nil {
		if err := domain.ValidateNickname(*input.Nickname); err != nil {
			return nil, apperrors.NewBadRequest(err.Error())
		}
		if *input.Nickname != person.Nickname {
			person.Nickname = *input.Nickname
			nickname = input.Nickname
			changed = true
		}
	}

	if input.Password != nil {
		if err := domain.ValidatePassword(*input.Password); err != nil {
			return nil, apperrors.NewBadRequest(err.Error())
		}
		err := auth.ComparePassword(person.PasswordHash, *input.Password)
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
			if err != nil {
				return nil, err
			}
			person.PasswordHash = hash
			changed = true
		case err != nil:
			return nil, err
		}
	}

	if !changed {
		return nil, nil
	}
	if err := s.persons.Update(ctx, person); err != nil {
		if errors.Is(err, repository.ErrNicknameTaken) {
			return nil, errNicknameExists
		}
		return nil, err
	}
	s.publish(ctx, events.New(events.EventPersonUpdated, person.ID, person.ID, nil))
	return nickname, nil
}

func validateCredentials(nickname, password string) error {
	if err := domain.ValidateNickname(nickname); err != nil {
		return apperrors.NewBadRequest(err.Error())
	}
	if err := domain.ValidatePassword(password); err != nil {
		return apperrors.NewBadRequest(err.Error())
	}
	return nil
}
