package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/harmony-ledger/harmony/internal/config"
	"github.com/harmony-ledger/harmony/internal/events"
)

// AuditService records ledger events in the log and, when configured, in a
// capped Redis stream.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *redis.Client
	cfg        config.AuditConfig
}

// NewAuditService creates the service. A nil client disables the stream.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, client *redis.Client, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      client,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to every ledger event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.LedgerEventTypes {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("ledger event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("owner", event.Owner),
		zap.Int64("resource_id", event.ResourceID),
		zap.Any("payload", event.Payload))

	return a.appendToStream(ctx, event)
}

func (a *AuditService) appendToStream(ctx context.Context, event events.Event) error {
	if a.redis == nil || strings.TrimSpace(a.cfg.Stream) == "" {
		return nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Type, err)
	}

	args := &redis.XAddArgs{
		Stream: a.cfg.Stream,
		Values: map[string]any{
			"id":          event.ID,
			"type":        string(event.Type),
			"owner":       event.Owner,
			"resource_id": event.ResourceID,
			"timestamp":   event.Timestamp.Format(time.RFC3339Nano),
			"payload":     string(payload),
		},
	}
	if a.cfg.MaxLen > 0 {
		args.MaxLen = a.cfg.MaxLen
	}
	if timeout := a.cfg.WriteTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := a.redis.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("append %s to %s: %w", event.Type, a.cfg.Stream, err)
	}
	return nil
}
