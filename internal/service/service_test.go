package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/harmony-ledger/harmony/internal/events"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		page, pageSize int
		limit, offset  int
	}{
		{name: "first page", page: 1, pageSize: 10, limit: 10, offset: 0},
		{name: "third page", page: 3, pageSize: 10, limit: 10, offset: 20},
		{name: "zero page", page: 0, pageSize: 10, limit: 10, offset: 0},
		{name: "zero size", page: 1, pageSize: 0, limit: 64, offset: 0},
		{name: "both zero", page: 0, pageSize: 0, limit: 64, offset: 0},
		{name: "zero size later page", page: 2, pageSize: 0, limit: 64, offset: 64},
		{name: "defaults", page: DefaultPage, pageSize: DefaultPageSize, limit: 256, offset: 0},
		{name: "max size", page: 5, pageSize: MaxPageSize, limit: 1024, offset: 4096},
		{name: "largest accepted page", page: MaxPage, pageSize: MaxPageSize, limit: 1024, offset: (MaxPage - 1) * MaxPageSize},
		{name: "page past int range", page: math.MaxInt/256 + 2, pageSize: 256, limit: 256, offset: (math.MaxInt / 256) * 256},
		{name: "max int page", page: math.MaxInt, pageSize: 1, limit: 1, offset: math.MaxInt - 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			limit, offset := Paginate(tt.page, tt.pageSize)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
			assert.GreaterOrEqual(t, offset, 0)
		})
	}
}

func TestPublisherLogsDeliveryFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventObjectCreated, func(context.Context, events.Event) error {
		return errors.New("sink unavailable")
	})

	p := publisher{dispatcher: dispatcher, logger: zap.New(core)}
	p.publish(context.Background(), events.New(events.EventObjectCreated, 1, 2, nil))

	entries := logs.FilterMessage("event delivery failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "object_created", entries[0].ContextMap()["event_type"])
	}

	assert.NotPanics(t, func() {
		publisher{}.publish(context.Background(), events.New(events.EventObjectCreated, 1, 2, nil))
	})
}
