package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/utility-service/internal/domain"
)

const issueTable = "issues"

// enrichedColumns are the persisted issue fields plus the live catalog
// fields joined in at query time.
var enrichedColumns = []string{
	"i.id", "i.user_id", "i.issue_type_id", "i.description", "i.address",
	"i.status", "i.cost", "i.currency", "i.assignee_id",
	"i.created_at", "i.updated_at",
	"it.name AS service_name", "it.price AS service_price", "it.currency AS service_currency",
}

// IssueFilter captures listing filters. Nil fields apply no restriction;
// set fields compose conjunctively.
type IssueFilter struct {
	UserID     *int64
	Status     *domain.IssueStatus
	AssigneeID *int64
}

// IssueRepository encapsulates issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id int64) (*domain.IssueWithService, error)
	List(ctx context.Context, filter IssueFilter) ([]domain.IssueWithService, error)
	// UpdateStatus sets status unconditionally and refreshes updated_at.
	// A nil assignee leaves assignee_id untouched; a non-nil invalid value
	// clears it.
	UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus, assignee *null.Int64) error
}

type issueRepository struct {
	db Querier
}

// NewIssueRepository instantiates repository.
func NewIssueRepository(db Querier) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.
		Insert(issueTable).
		Columns("user_id", "issue_type_id", "description", "address", "status", "cost", "currency").
		Values(issue.UserID, issue.IssueTypeID, issue.Description, issue.Address, issue.Status, issue.Cost, issue.Currency).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build issue insert: %w", err)
	}
	return r.db.QueryRow(ctx, query, args...).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
}

func (r *issueRepository) GetByID(ctx context.Context, id int64) (*domain.IssueWithService, error) {
	query, args, err := r.enrichedSelect().Where(sq.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build issue query: %w", err)
	}

	issue, err := scanEnriched(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return issue, nil
}

func (r *issueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.IssueWithService, error) {
	builder := r.enrichedSelect()
	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"i.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"i.status": *filter.Status})
	}
	if filter.AssigneeID != nil {
		builder = builder.Where(sq.Eq{"i.assignee_id": *filter.AssigneeID})
	}

	// Insertion order keeps listings stable for a given store state.
	query, args, err := builder.OrderBy("i.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build issue list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.IssueWithService
	for rows.Next() {
		issue, err := scanEnriched(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *issue)
	}
	return result, rows.Err()
}

func (r *issueRepository) UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus, assignee *null.Int64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.
		Update(issueTable).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	if assignee != nil {
		builder = builder.Set("assignee_id", *assignee)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build issue update: %w", err)
	}

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueRepository) enrichedSelect() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.
		Select(enrichedColumns...).
		From(issueTable + " i").
		Join(issueTypeTable + " it ON it.id = i.issue_type_id")
}

func scanEnriched(row pgx.Row) (*domain.IssueWithService, error) {
	var issue domain.IssueWithService
	if err := row.Scan(
		&issue.ID,
		&issue.UserID,
		&issue.IssueTypeID,
		&issue.Description,
		&issue.Address,
		&issue.Status,
		&issue.Cost,
		&issue.Currency,
		&issue.AssigneeID,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&issue.ServiceName,
		&issue.ServicePrice,
		&issue.ServiceCurrency,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}
