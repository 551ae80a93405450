package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/spec-kit/utility-service/internal/domain"
)

const issueTypeTable = "issue_types"

// IssueTypeRepository provides read-only access to the service-type catalog.
type IssueTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.IssueType, error)
}

type issueTypeRepository struct {
	db Querier
}

// NewIssueTypeRepository builds the repository.
func NewIssueTypeRepository(db Querier) IssueTypeRepository {
	return &issueTypeRepository{db: db}
}

func (r *issueTypeRepository) GetByID(ctx context.Context, id int64) (*domain.IssueType, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.
		Select("id", "name", "price", "currency", "created_at", "updated_at").
		From(issueTypeTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build issue type query: %w", err)
	}

	var it domain.IssueType
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&it.ID,
		&it.Name,
		&it.Price,
		&it.Currency,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}
