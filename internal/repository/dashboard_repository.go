package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"blood-connect/internal/domain"
)

type DashboardRepository interface {
	DonorGroupCounts(ctx context.Context) ([]domain.BloodGroupCount, error)
	RequestStatusCounts(ctx context.Context) (map[domain.RequestStatus]int64, error)
	CountPatients(ctx context.Context) (int64, error)
	CountStories(ctx context.Context) (int64, error)
	LastRequestAt(ctx context.Context) (*time.Time, error)
}

type dashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) DonorGroupCounts(ctx context.Context) ([]domain.BloodGroupCount, error) {
	query := `
		SELECT blood_group, COUNT(*) AS total, COUNT(*) FILTER (WHERE is_blocked) AS blocked
		FROM donors
		GROUP BY blood_group
		ORDER BY blood_group`

	var counts []domain.BloodGroupCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *dashboardRepository) RequestStatusCounts(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM blood_requests GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RequestStatus]int64)
	for rows.Next() {
		var status domain.RequestStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *dashboardRepository) CountPatients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`)
	return count, err
}

func (r *dashboardRepository) CountStories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM stories`)
	return count, err
}

func (r *dashboardRepository) LastRequestAt(ctx context.Context) (*time.Time, error) {
	var last sql.NullTime
	if err := r.db.GetContext(ctx, &last, `SELECT MAX(created_at) FROM blood_requests`); err != nil {
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
