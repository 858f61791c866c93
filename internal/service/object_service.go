package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/harmony-ledger/harmony/internal/domain"
	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/repository"
)

// ObjectService manages the finance objects of an owner.
type ObjectService struct {
	objects repository.ObjectRepository
	publisher
}

// ObjectDependencies encapsulates requirements for the object service.
type ObjectDependencies struct {
	ObjectRepo repository.ObjectRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ObjectInput describes a new object.
type ObjectInput struct {
	Symbol string
	Alias  *string
	Remark *string
}

// ObjectPatch holds the fields to change; nil fields keep their value.
type ObjectPatch struct {
	Symbol *string
	Alias  *string
	Remark *string
}

// ObjectPage is one page of an owner's objects and the owner's total.
type ObjectPage struct {
	Objects []domain.Object
	Total   int64
}

// NewObjectService constructs the service.
func NewObjectService(deps ObjectDependencies) *ObjectService {
	return &ObjectService{
		objects:   deps.ObjectRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns the owner's objects, or only the one matching query.ID.
func (s *ObjectService) List(ctx context.Context, owner int64, query ListQuery) (ObjectPage, error) {
	total, err := s.objects.CountByOwner(ctx, owner)
	if err != nil {
		return ObjectPage{}, err
	}

	if query.ID != nil {
		object, err := s.Get(ctx, owner, *query.ID)
		if err != nil {
			return ObjectPage{}, err
		}
		return ObjectPage{Objects: []domain.Object{*object}, Total: total}, nil
	}

	limit, offset := Paginate(query.Page, query.PageSize)
	objects, err := s.objects.ListByOwner(ctx, owner, limit, offset)
	if err != nil {
		return ObjectPage{}, err
	}
	return ObjectPage{Objects: objects, Total: total}, nil
}

// Get returns one owned object.
func (s *ObjectService) Get(ctx context.Context, owner, id int64) (*domain.Object, error) {
	object, err := s.objects.GetByIDOwner(ctx, id, owner)
	if err != nil {
		return nil, notFound(err, "object", id)
	}
	return object, nil
}

// Create stores a new object for owner.
func (s *ObjectService) Create(ctx context.Context, owner int64, input ObjectInput) (*domain.Object, error) {
	object := &domain.Object{
		Owner:  owner,
		Symbol: input.Symbol,
		Alias:  input.Alias,
		Remark: input.Remark,
	}
	if err := s.objects.Create(ctx, object); err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventObjectCreated, owner, object.ID, events.ObjectPayload{Symbol: object.Symbol}))
	return object, nil
}

// Update merges patch into the owned object id.
func (s *ObjectService) Update(ctx context.Context, owner, id int64, patch ObjectPatch) (*domain.Object, error) {
	object, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Symbol != nil {
		object.Symbol = *patch.Symbol
	}
	if patch.Alias != nil {
		object.Alias = patch.Alias
	}
	if patch.Remark != nil {
		object.Remark = patch.Remark
	}

	if err := s.objects.Update(ctx, object); err != nil {
		return nil, notFound(err, "object", id)
	}
	s.publish(ctx, events.New(events.EventObjectUpdated, owner, id, events.ObjectPayload{Symbol: object.Symbol}))
	return object, nil
}

// Delete removes the owned object id and returns it as it was.
func (s *ObjectService) Delete(ctx context.Context, owner, id int64) (*domain.Object, error) {
	object, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := s.objects.Delete(ctx, id, owner); err != nil {
		return nil, notFound(err, "object", id)
	}
	s.publish(ctx, events.New(events.EventObjectDeleted, owner, id, events.ObjectPayload{Symbol: object.Symbol}))
	return object, nil
}
