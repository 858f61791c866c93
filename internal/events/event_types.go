package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventObjectCreated      EventType = "object_created"
	EventObjectUpdated      EventType = "object_updated"
	EventObjectDeleted      EventType = "object_deleted"
	EventTradeCreated       EventType = "trade_created"
	EventTradeUpdated       EventType = "trade_updated"
	EventTradeDeleted       EventType = "trade_deleted"
	EventTransactionCreated EventType = "transaction_created"
	EventTransactionUpdated EventType = "transaction_updated"
	EventTransactionDeleted EventType = "transaction_deleted"
	EventPersonRegistered   EventType = "person_registered"
	EventPersonUpdated      EventType = "person_updated"
)

// LedgerEventTypes lists every type published by the ledger services.
var LedgerEventTypes = []EventType{
	EventObjectCreated,
	EventObjectUpdated,
	EventObjectDeleted,
	EventTradeCreated,
	EventTradeUpdated,
	EventTradeDeleted,
	EventTransactionCreated,
	EventTransactionUpdated,
	EventTransactionDeleted,
	EventPersonRegistered,
	EventPersonUpdated,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Owner      int64     `json:"owner"`
	ResourceID int64     `json:"resource_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, owner, resourceID int64, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Owner:      owner,
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// TradePayload describes the pair a trade links.
type TradePayload struct {
	BaseObjectID  int64 `json:"base_object_id"`
	QuoteObjectID int64 `json:"quote_object_id"`
}

// TransactionPayload describes a recorded movement.
type TransactionPayload struct {
	TradeID       int64  `json:"trade_id"`
	Quantity      string `json:"quantity"`
	IsBaseToQuote bool   `json:"is_base_to_quote"`
}

// ObjectPayload describes a finance object.
type ObjectPayload struct {
	Symbol string `json:"symbol"`
}
