package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/repository"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 256
	MaxPageSize     = 1024
	MaxPage         = 1 << 53

	fallbackPageSize = 64
)

// ListQuery selects either a single owned row (ID set) or one page of rows.
type ListQuery struct {
	ID       *int64
	Page     int
	PageSize int
}

// Paginate turns a page number and size into a LIMIT/OFFSET pair. A zero page
// is treated as the first one and a zero size falls back to 64. Pages past the
// last representable offset are clamped to it.
func Paginate(page, pageSize int) (limit, offset int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = fallbackPageSize
	}
	if page-1 > math.MaxInt/pageSize {
		page = math.MaxInt/pageSize + 1
	}
	return pageSize, (page - 1) * pageSize
}

// publisher forwards ledger events to the dispatcher. Delivery failures are
// logged and never fail the mutation that produced them.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event delivery failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func notFound(err error, resource string, id int64) error {
	if repository.IsNotFound(err) {
		return apperrors.NewNotFound(resource, id)
	}
	return err
}
