package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueType is a catalog entry defining a service's name and reference
// price/currency. The catalog is owned by an external process; this service
// only reads it.
type IssueType struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
