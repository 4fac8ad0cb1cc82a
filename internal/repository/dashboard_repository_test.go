package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
)

func TestDashboardRepository_Counts(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM donors`)).
		WillReturnRows(sqlmock.NewRows([]string{"blood_group", "total", "blocked"}).
			AddRow("A+", 4, 1).
			AddRow("O-", 2, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) FROM blood_requests GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 3).
			AddRow("completed", 1))

	groups, err := repo.DonorGroupCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.BloodGroupCount{
		{BloodGroup: "A+", Total: 4, Blocked: 1},
		{BloodGroup: "O-", Total: 2, Blocked: 0},
	}, groups)

	statuses, err := repo.RequestStatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), statuses[domain.StatusPending])
	assert.Equal(t, int64(0), statuses[domain.StatusAccepted])
	assert.Equal(t, int64(1), statuses[domain.StatusCompleted])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_LastRequestAt(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(created_at) FROM blood_requests`)).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		last, err := NewDashboardRepository(db).LastRequestAt(ctx)

		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("latest request", func(t *testing.T) {
		db, mock := newMockDB(t)
		at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(created_at) FROM blood_requests`)).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(at))

		last, err := NewDashboardRepository(db).LastRequestAt(ctx)

		require.NoError(t, err)
		require.NotNil(t, last)
		assert.True(t, at.Equal(*last))
	})
}
