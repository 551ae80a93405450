package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/utility-service/internal/domain"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	IssueTypeID int64  `json:"issue_type_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=2000"`
	Address     string `json:"address" validate:"required,max=512"`
}

// UpdateIssueRequest payload. AssigneeID is tri-state: leaving it out of the
// payload keeps the stored assignee, null clears it, a positive integer sets
// it.
type UpdateIssueRequest struct {
	Status     string      `json:"status" validate:"required,oneof=new in_progress completed cancelled"`
	AssigneeID OptionalInt `json:"assignee_id"`
}

// IssueResponse is the flat wire shape for an issue: every persisted field
// plus the service_* enrichment fields from the current catalog row.
type IssueResponse struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	IssueTypeID     int64              `json:"issue_type_id"`
	Description     string             `json:"description"`
	Address         string             `json:"address"`
	Status          domain.IssueStatus `json:"status"`
	Cost            decimal.Decimal    `json:"cost"`
	Currency        string             `json:"currency"`
	AssigneeID      null.Int64           `json:"assignee_id"`
	ServiceName     string             `json:"service_name"`
	ServicePrice    decimal.Decimal    `json:"service_price"`
	ServiceCurrency string             `json:"service_currency"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
