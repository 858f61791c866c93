package domain

import "time"

// Object is a tradable instrument owned by a person (a currency, a stock, a token).
type Object struct {
	ID        int64
	Owner     int64
	Symbol    string
	Alias     *string
	Remark    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
