package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/utility-service/internal/api/dto"
	"github.com/spec-kit/utility-service/pkg/util"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	return domainErr.Message
}

func TestValidate_CreateIssue_OK(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{
		UserID:      123,
		IssueTypeID: 1,
		Description: "leak in the bathroom",
		Address:     "10 Lenina st, apt 5",
	}
	assert.NoError(t, v.Validate(req))
}

func TestValidate_CreateIssue_MissingUserID(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{IssueTypeID: 1, Description: "leak", Address: "addr"}
	assert.Equal(t, "user_id is required", validationMessage(t, v.Validate(req)))
}

func TestValidate_CreateIssue_NegativeUserID(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{UserID: -5, IssueTypeID: 1, Description: "leak", Address: "addr"}
	assert.Equal(t, "user_id must be a positive integer", validationMessage(t, v.Validate(req)))
}

func TestValidate_CreateIssue_MissingIssueTypeID(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{UserID: 1, Description: "leak", Address: "addr"}
	assert.Equal(t, "issue_type_id is required", validationMessage(t, v.Validate(req)))
}

func TestValidate_CreateIssue_DescriptionTooLong(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{
		UserID:      1,
		IssueTypeID: 1,
		Description: strings.Repeat("x", 2001),
		Address:     "addr",
	}
	assert.Equal(t, "description must be at most 2000 characters", validationMessage(t, v.Validate(req)))
}

func TestValidate_CreateIssue_AddressTooLong(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{
		UserID:      1,
		IssueTypeID: 1,
		Description: "leak",
		Address:     strings.Repeat("x", 513),
	}
	assert.Equal(t, "address must be at most 512 characters", validationMessage(t, v.Validate(req)))
}

func TestValidate_CreateIssue_BoundaryLengths(t *testing.T) {
	v := New()
	req := dto.CreateIssueRequest{
		UserID:      1,
		IssueTypeID: 1,
		Description: strings.Repeat("x", 2000),
		Address:     strings.Repeat("x", 512),
	}
	assert.NoError(t, v.Validate(req))
}

func TestValidate_UpdateIssue_StatusRequired(t *testing.T) {
	v := New()
	assert.Equal(t, "status is required", validationMessage(t, v.Validate(dto.UpdateIssueRequest{})))
}

func TestValidate_UpdateIssue_StatusEnum(t *testing.T) {
	v := New()

	for _, status := range []string{"new", "in_progress", "completed", "cancelled"} {
		assert.NoError(t, v.Validate(dto.UpdateIssueRequest{Status: status}))
	}

	err := v.Validate(dto.UpdateIssueRequest{Status: "done"})
	assert.Equal(t, "status must be one of: new, in_progress, completed, cancelled", validationMessage(t, err))
}

func TestValidate_UpdateIssue_AssigneeStates(t *testing.T) {
	v := New()

	var req dto.UpdateIssueRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"new","assignee_id":null}`), &req))
	assert.NoError(t, v.Validate(req))

	require.NoError(t, json.Unmarshal([]byte(`{"status":"new","assignee_id":456}`), &req))
	assert.NoError(t, v.Validate(req))

	require.NoError(t, json.Unmarshal([]byte(`{"status":"new","assignee_id":0}`), &req))
	assert.Equal(t, "assignee_id must be a positive integer", validationMessage(t, v.Validate(req)))

	require.NoError(t, json.Unmarshal([]byte(`{"status":"new","assignee_id":-2}`), &req))
	assert.Equal(t, "assignee_id must be a positive integer", validationMessage(t, v.Validate(req)))
}
