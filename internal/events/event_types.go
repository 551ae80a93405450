package events

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/utility-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated       EventType = "issue_created"
	EventIssueStatusChanged EventType = "issue_status_changed"
	EventIssueAssigned      EventType = "issue_assigned"
)

// Event represents a lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   int64       `json:"issue_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	UserID      int64              `json:"user_id"`
	IssueTypeID int64              `json:"issue_type_id"`
	Cost        decimal.Decimal    `json:"cost"`
	Currency    string             `json:"currency"`
	Status      domain.IssueStatus `json:"status"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}

// IssueAssignedPayload payload.
type IssueAssignedPayload struct {
	AssigneeID null.Int64 `json:"assignee_id"`
}
