package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blood-connect/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type alertRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (id, type, title, message, is_read, related_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		alert.ID, alert.Type, alert.Title, alert.Message, alert.IsRead, alert.RelatedID, alert.UserID,
	).Scan(&alert.CreatedAt, &alert.UpdatedAt)
}

func (r *alertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	const op = "repository.alert.List"

	builder := r.sq.Select("*").From("alerts").OrderBy("created_at DESC")
	if filter.UserID != "" {
		builder = builder.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"type": filter.Type})
	}
	if filter.IsRead != nil {
		builder = builder.Where(sq.Eq{"is_read": *filter.IsRead})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	alerts := []domain.Alert{}
	if err := r.db.SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return alerts, nil
}

// MarkAsRead returns nil, nil when the alert does not exist.
func (r *alertRepository) MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alerts := []domain.Alert{}
	query := `UPDATE alerts SET is_read = TRUE, updated_at = NOW() WHERE id = $1 RETURNING *`
	if err := r.db.SelectContext(ctx, &alerts, query, id); err != nil {
		return nil, err
	}
	if len(alerts) == 0 {
		return nil, nil
	}
	return &alerts[0], nil
}

// MarkAllAsRead flips unread alerts, scoped to exactly userID when it is set,
// and reports how many rows changed.
func (r *alertRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	const op = "repository.alert.MarkAllAsRead"

	builder := r.sq.Update("alerts").
		Set("is_read", true).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"is_read": false})
	if userID != "" {
		builder = builder.Where(sq.Eq{"user_id": userID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return result.RowsAffected()
}

func (r *alertRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	builder := r.sq.Select("COUNT(*)").From("alerts").Where(sq.Eq{"is_read": false})
	if userID != "" {
		builder = builder.Where(sq.Eq{"user_id": userID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.GetContext(ctx, &count, query, args...)
	return count, err
}
