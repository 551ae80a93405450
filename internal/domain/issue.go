package domain

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusNew        IssueStatus = "new"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusCompleted  IssueStatus = "completed"
	IssueStatusCancelled  IssueStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusNew, IssueStatusInProgress, IssueStatusCompleted, IssueStatusCancelled:
		return true
	}
	return false
}

// Issue is the aggregate for utility maintenance requests. Cost and Currency
// are snapshots taken from the issue type at creation time; they are never
// re-derived from the catalog afterwards.
type Issue struct {
	ID          int64
	UserID      int64
	IssueTypeID int64
	Description string
	Address     string
	Status      IssueStatus
	Cost        decimal.Decimal
	Currency    string
	AssigneeID  null.Int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IssueWithService is an issue enriched at read time with the current
// catalog fields of its issue type. The Service* fields reflect the catalog
// as of the query, not the snapshot stored on the issue.
type IssueWithService struct {
	Issue
	ServiceName     string
	ServicePrice    decimal.Decimal
	ServiceCurrency string
}
