package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
)

func TestAlertRepository_MarkAllAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped to one user and idempotent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAlertRepository(db)

		query := regexp.QuoteMeta(`UPDATE alerts SET is_read = $1, updated_at = NOW() WHERE is_read = $2 AND user_id = $3`)
		mock.ExpectExec(query).
			WithArgs(true, false, "u1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(query).
			WithArgs(true, false, "u1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.MarkAllAsRead(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated)

		updated, err = repo.MarkAllAsRead(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), updated)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without user marks every unread alert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAlertRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE alerts SET is_read = $1, updated_at = NOW() WHERE is_read = $2`)).
			WithArgs(true, false).
			WillReturnResult(sqlmock.NewResult(0, 5))

		updated, err := repo.MarkAllAsRead(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, int64(5), updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAlertRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlertRepository(db)
	unread := false

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM alerts WHERE user_id = $1 AND type = $2 AND is_read = $3 ORDER BY created_at DESC`)).
		WithArgs("u1", "blood_request", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "title", "is_read", "user_id"}).
			AddRow(uuid.New().String(), "blood_request", "Blood Request Match", false, "u1"))

	alerts, err := repo.List(context.Background(), domain.AlertFilter{
		UserID: "u1",
		Type:   "blood_request",
		IsRead: &unread,
	})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertBloodRequest, alerts[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAlertRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE alerts SET is_read = TRUE`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_read"}).AddRow(id.String(), true))

		alert, err := repo.MarkAsRead(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, alert)
		assert.True(t, alert.IsRead)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAlertRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE alerts SET is_read = TRUE`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_read"}))

		alert, err := repo.MarkAsRead(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, alert)
	})
}
