package handlers

import (
	"strconv"

	"github.com/aarondl/null/v8"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/utility-service/internal/api/dto"
	"github.com/spec-kit/utility-service/internal/domain"
	"github.com/spec-kit/utility-service/internal/repository"
	"github.com/spec-kit/utility-service/internal/service"
	"github.com/spec-kit/utility-service/internal/validation"
	apperrors "github.com/spec-kit/utility-service/pkg/util"
)

// IssuesHandler manages issue lifecycle endpoints.
type IssuesHandler struct {
	service   *service.IssueService
	validator *validation.Validator
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService, validator *validation.Validator) *IssuesHandler {
	return &IssuesHandler{service: issueService, validator: validator}
}

// CreateIssue POST /issues.
func (h *IssuesHandler) CreateIssue(c *fiber.Ctx) error {
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	input := service.IssueCreateInput{
		UserID:      req.UserID,
		IssueTypeID: req.IssueTypeID,
		Description: req.Description,
		Address:     req.Address,
	}
	issue, err := h.service.CreateIssue(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(issueResponse(issue))
}

// ListIssues GET /issues.
func (h *IssuesHandler) ListIssues(c *fiber.Ctx) error {
	filter, err := parseIssueFilter(c)
	if err != nil {
		return err
	}
	issues, err := h.service.ListIssues(c.UserContext(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, issueResponse(&issues[i]))
	}
	return c.JSON(items)
}

// UpdateIssue PUT /issues/:id.
func (h *IssuesHandler) UpdateIssue(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("Invalid issue ID")
	}

	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	// nil means the payload did not mention assignee_id at all.
	var assignee *null.Int64
	if req.AssigneeID.Present {
		value := req.AssigneeID.Value
		assignee = &value
	}

	issue, err := h.service.UpdateIssueStatus(c.UserContext(), id, domain.IssueStatus(req.Status), assignee)
	if err != nil {
		return err
	}
	return c.JSON(issueResponse(issue))
}

// parseIssueFilter coerces the optional query filters. A filter value that
// does not coerce to its typed form is rejected rather than ignored.
func parseIssueFilter(c *fiber.Ctx) (repository.IssueFilter, error) {
	var filter repository.IssueFilter

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			return filter, apperrors.NewValidationError("user_id filter must be a positive integer")
		}
		filter.UserID = &userID
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.IssueStatus(raw)
		if !status.Valid() {
			return filter, apperrors.NewValidationError("status filter must be one of: new, in_progress, completed, cancelled")
		}
		filter.Status = &status
	}
	if raw := c.Query("assignee_id"); raw != "" {
		assigneeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || assigneeID <= 0 {
			return filter, apperrors.NewValidationError("assignee_id filter must be a positive integer")
		}
		filter.AssigneeID = &assigneeID
	}
	return filter, nil
}

func issueResponse(issue *domain.IssueWithService) dto.IssueResponse {
	return dto.IssueResponse{
		ID:              issue.ID,
		UserID:          issue.UserID,
		IssueTypeID:     issue.IssueTypeID,
		Description:     issue.Description,
		Address:         issue.Address,
		Status:          issue.Status,
		Cost:            issue.Cost,
		Currency:        issue.Currency,
		AssigneeID:      issue.AssigneeID,
		ServiceName:     issue.ServiceName,
		ServicePrice:    issue.ServicePrice,
		ServiceCurrency: issue.ServiceCurrency,
		CreatedAt:       issue.CreatedAt,
		UpdatedAt:       issue.UpdatedAt,
	}
}
