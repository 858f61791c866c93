package domain

import "time"

// Trade pairs a base and a quote object belonging to the same owner.
type Trade struct {
	ID            int64
	Owner         int64
	BaseObjectID  int64
	QuoteObjectID int64
	Alias         *string
	Remark        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
