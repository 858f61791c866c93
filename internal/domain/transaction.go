package domain

import "time"

// Transaction records a quantity moved within a trade.
type Transaction struct {
	ID            int64
	TradeID       int64
	Quantity      Quantity
	IsBaseToQuote bool
	Alias         *string
	Remark        *string
	OccurrenceAt  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
