package service

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/utility-service/internal/domain"
	"github.com/spec-kit/utility-service/internal/events"
	"github.com/spec-kit/utility-service/internal/repository"
	"github.com/spec-kit/utility-service/pkg/util"
)

// IssueService coordinates the issue lifecycle: creation against the
// service-type catalog, filtered listing and status updates.
type IssueService struct {
	issues     repository.IssueRepository
	issueTypes repository.IssueTypeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo     repository.IssueRepository
	IssueTypeRepo repository.IssueTypeRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// IssueCreateInput describes issue creation payload.
type IssueCreateInput struct {
	UserID      int64
	IssueTypeID int64
	Description string
	Address     string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		issueTypes: deps.IssueTypeRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateIssue validates the issue type reference, snapshots its price and
// currency onto a new issue and persists it. The catalog lookup and the
// insert are two separate statements; a concurrent catalog change between
// them is an accepted gap.
func (s *IssueService) CreateIssue(ctx context.Context, input IssueCreateInput) (*domain.IssueWithService, error) {
	issueType, err := s.issueTypes.GetByID(ctx, input.IssueTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewInvalidReference("Invalid issue_type_id")
		}
		return nil, err
	}

	issue := &domain.Issue{
		UserID:      input.UserID,
		IssueTypeID: input.IssueTypeID,
		Description: input.Description,
		Address:     input.Address,
		Status:      domain.IssueStatusNew,
		Cost:        issueType.Price,
		Currency:    issueType.Currency,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}

	created, err := s.issues.GetByID(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: created.ID,
		Payload: events.IssueCreatedPayload{
			UserID:      created.UserID,
			IssueTypeID: created.IssueTypeID,
			Cost:        created.Cost,
			Currency:    created.Currency,
			Status:      created.Status,
		},
	})
	s.logger.Info("created issue",
		zap.Int64("issue_id", created.ID),
		zap.Int64("user_id", created.UserID),
	)
	return created, nil
}

// ListIssues returns enriched issues matching the filter. Filters compose
// conjunctively; an empty filter returns everything.
func (s *IssueService) ListIssues(ctx context.Context, filter repository.IssueFilter) ([]domain.IssueWithService, error) {
	return s.issues.List(ctx, filter)
}

// UpdateIssueStatus sets the status of an existing issue and, when the
// caller supplied one, the assignee. A nil assignee leaves the stored value
// untouched; an invalid null.Int64 clears it.
func (s *IssueService) UpdateIssueStatus(ctx context.Context, id int64, status domain.IssueStatus, assignee *null.Int64) (*domain.IssueWithService, error) {
	existing, err := s.issues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Issue not found")
		}
		return nil, err
	}

	if err := s.issues.UpdateStatus(ctx, id, status, assignee); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Issue not found")
		}
		return nil, err
	}

	updated, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status != updated.Status {
		s.publish(ctx, events.Event{
			Type:    events.EventIssueStatusChanged,
			IssueID: id,
			Payload: events.IssueStatusChangedPayload{
				OldStatus: existing.Status,
				NewStatus: updated.Status,
			},
		})
	}
	if assignee != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventIssueAssigned,
			IssueID: id,
			Payload: events.IssueAssignedPayload{AssigneeID: updated.AssigneeID},
		})
	}
	s.logger.Info("updated issue status",
		zap.Int64("issue_id", id),
		zap.String("status", string(status)),
	)
	return updated, nil
}

func (s *IssueService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
