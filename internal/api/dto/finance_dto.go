package dto

import (
	"time"

	"github.com/harmony-ledger/harmony/internal/domain"
)

// ListParams are the query parameters shared by every finance listing. The
// page bound keeps (page-1)*page_size within int64 at the largest page size.
type ListParams struct {
	ID       *int64 `query:"id"`
	Page     *int   `query:"page" validate:"omitempty,min=1,max=9007199254740992"`
	PageSize *int   `query:"page_size" validate:"omitempty,min=1,max=1024"`
}

// CreatedResponse answers a successful create.
type CreatedResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// IDResponse answers a successful update.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ObjectCreateRequest payload.
type ObjectCreateRequest struct {
	Symbol string  `json:"symbol" validate:"min=1,max=1024"`
	Alias  *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark *string `json:"remark" validate:"omitempty,min=1,max=4096"`
}

// ObjectUpdateRequest payload.
type ObjectUpdateRequest struct {
	Symbol *string `json:"symbol" validate:"omitempty,min=2,max=1024"`
	Alias  *string `json:"alias" validate:"omitempty,min=2,max=4096"`
	Remark *string `json:"remark" validate:"omitempty,min=2,max=4096"`
}

// ObjectItem is the wire form of a finance object.
type ObjectItem struct {
	ID        int64     `json:"id"`
	Owner     int64     `json:"owner"`
	Symbol    string    `json:"symbol"`
	Alias     *string   `json:"alias"`
	Remark    *string   `json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ObjectListResponse is one page of objects.
type ObjectListResponse struct {
	Objects []ObjectItem `json:"objects"`
	Total   int64        `json:"total"`
}

// TradeCreateRequest payload.
type TradeCreateRequest struct {
	BaseObjectID  int64   `json:"base_object_id" validate:"min=1"`
	QuoteObjectID int64   `json:"quote_object_id" validate:"min=1"`
	Alias         *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark        *string `json:"remark" validate:"omitempty,min=1,max=4096"`
}

// TradeUpdateRequest payload.
type TradeUpdateRequest struct {
	BaseObjectID  *int64  `json:"base_object_id" validate:"omitempty,min=1"`
	QuoteObjectID *int64  `json:"quote_object_id" validate:"omitempty,min=1"`
	Alias         *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark        *string `json:"remark" validate:"omitempty,min=1,max=4096"`
}

// TradeItem is the wire form of a trade.
type TradeItem struct {
	ID            int64     `json:"id"`
	Owner         int64     `json:"owner"`
	BaseObjectID  int64     `json:"base_object_id"`
	QuoteObjectID int64     `json:"quote_object_id"`
	Alias         *string   `json:"alias"`
	Remark        *string   `json:"remark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TradeListResponse is one page of trades.
type TradeListResponse struct {
	Trades []TradeItem `json:"trades"`
	Total  int64       `json:"total"`
}

// TransactionCreateRequest payload. occurrence_at defaults to now.
type TransactionCreateRequest struct {
	Quantity      domain.Quantity `json:"quantity" validate:"quantity"`
	IsBaseToQuote *bool           `json:"is_base_to_quote" validate:"required"`
	Alias         *string         `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark        *string         `json:"remark" validate:"omitempty,min=1,max=4096"`
	OccurrenceAt  *time.Time      `json:"occurrence_at"`
}

// TransactionUpdateRequest payload.
type TransactionUpdateRequest struct {
	Quantity      *domain.Quantity `json:"quantity" validate:"omitempty,quantity"`
	IsBaseToQuote *bool            `json:"is_base_to_quote"`
	Alias         *string          `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark        *string          `json:"remark" validate:"omitempty,min=1,max=4096"`
	OccurrenceAt  *time.Time       `json:"occurrence_at"`
}

// TransactionItem is the wire form of a transaction.
type TransactionItem struct {
	ID            int64           `json:"id"`
	TradeID       int64           `json:"trade_id"`
	Quantity      domain.Quantity `json:"quantity"`
	IsBaseToQuote bool            `json:"is_base_to_quote"`
	Alias         *string         `json:"alias"`
	Remark        *string         `json:"remark"`
	OccurrenceAt  time.Time       `json:"occurrence_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionListResponse is one page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionItem `json:"transactions"`
	Total        int64             `json:"total"`
}

// NewObjectItem maps a domain object.
func NewObjectItem(o domain.Object) ObjectItem {
	return ObjectItem{
		ID:        o.ID,
		Owner:     o.Owner,
		Symbol:    o.Symbol,
		Alias:     o.Alias,
		Remark:    o.Remark,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// NewTradeItem maps a domain trade.
func NewTradeItem(t domain.Trade) TradeItem {
	return TradeItem{
		ID:            t.ID,
		Owner:         t.Owner,
		BaseObjectID:  t.BaseObjectID,
		QuoteObjectID: t.QuoteObjectID,
		Alias:         t.Alias,
		Remark:        t.Remark,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// NewTransactionItem maps a domain transaction.
func NewTransactionItem(tx domain.Transaction) TransactionItem {
	return TransactionItem{
		ID:            tx.ID,
		TradeID:       tx.TradeID,
		Quantity:      tx.Quantity,
		IsBaseToQuote: tx.IsBaseToQuote,
		Alias:         tx.Alias,
		Remark:        tx.Remark,
		OccurrenceAt:  tx.OccurrenceAt,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}
