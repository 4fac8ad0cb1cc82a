package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

var donorColumns = []string{"id", "name", "blood_group", "gender", "last_donation", "is_blocked", "blocked_at", "blocked_by"}

func TestDonorRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("default excludes blocked in insertion order", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM donors WHERE is_blocked = $1 ORDER BY created_at ASC`)).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(donorColumns).
				AddRow(uuid.New().String(), "Karim", "A+", "male", nil, false, nil, nil))

		donors, err := repo.List(ctx, domain.DonorFilter{})
		require.NoError(t, err)
		assert.Len(t, donors, 1)
		assert.Equal(t, "Karim", donors[0].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all filters combined", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		query := `SELECT * FROM donors WHERE is_blocked = $1 AND blood_group = $2 AND LOWER(gender) = LOWER($3) ` +
			`AND (name ILIKE $4 OR area ILIKE $5 OR district ILIKE $6 OR upazila ILIKE $7) ` +
			`ORDER BY last_donation ASC NULLS FIRST`

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(false, "O-", "Female", "%dhaka%", "%dhaka%", "%dhaka%", "%dhaka%").
			WillReturnRows(sqlmock.NewRows(donorColumns))

		donors, err := repo.List(ctx, domain.DonorFilter{
			BloodGroup: "O-",
			Gender:     "Female",
			Search:     " dhaka ",
			Sort:       domain.SortLastOldest,
		})
		require.NoError(t, err)
		assert.Empty(t, donors)
		assert.NotNil(t, donors)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("include blocked sorted by name", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM donors ORDER BY name ASC`)).
			WillReturnRows(sqlmock.NewRows(donorColumns).
				AddRow(uuid.New().String(), "Anika", "B+", "female", nil, true, time.Now(), "admin-1").
				AddRow(uuid.New().String(), "Babul", "B+", "male", nil, false, nil, nil))

		donors, err := repo.List(ctx, domain.DonorFilter{IncludeBlocked: true, Sort: domain.SortName})
		require.NoError(t, err)
		require.Len(t, donors, 2)
		assert.True(t, donors[0].IsBlocked)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search wildcards are escaped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		mock.ExpectQuery(`SELECT \* FROM donors WHERE is_blocked = \$1 AND \(name ILIKE \$2`).
			WithArgs(false, `%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`).
			WillReturnRows(sqlmock.NewRows(donorColumns))

		_, err := repo.List(ctx, domain.DonorFilter{Search: "50%_off"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDonorRepository_FindMatches(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDonorRepository(db)

	older := time.Now().AddDate(-1, 0, 0)
	newer := time.Now().AddDate(0, -1, 0)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY last_donation ASC NULLS FIRST, created_at ASC`)).
		WithArgs("B+", domain.MatchLimit).
		WillReturnRows(sqlmock.NewRows(donorColumns).
			AddRow(uuid.New().String(), "Never", "B+", "male", nil, false, nil, nil).
			AddRow(uuid.New().String(), "Older", "B+", "male", older, true, time.Now(), "admin-1").
			AddRow(uuid.New().String(), "Newer", "B+", "female", newer, false, nil, nil))

	donors, err := repo.FindMatches(context.Background(), "B+", domain.MatchLimit)
	require.NoError(t, err)
	require.Len(t, donors, 3)
	for _, d := range donors {
		assert.Equal(t, "B+", d.BloodGroup)
	}
	assert.Nil(t, donors[0].LastDonation)
	assert.True(t, donors[1].IsBlocked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonorRepository_SetBlocked(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	admin := "admin-1"

	t.Run("block stamps all moderation fields", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE donors SET is_blocked = TRUE, blocked_at = NOW(), blocked_by = $2`)).
			WithArgs(id, &admin).
			WillReturnRows(sqlmock.NewRows(donorColumns).
				AddRow(id.String(), "Karim", "A+", "male", nil, true, now, admin))

		donor, err := repo.SetBlocked(ctx, id, true, &admin)
		require.NoError(t, err)
		require.NotNil(t, donor)
		assert.True(t, donor.IsBlocked)
		require.NotNil(t, donor.BlockedBy)
		assert.Equal(t, admin, *donor.BlockedBy)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unblock clears all moderation fields", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE donors SET is_blocked = FALSE, blocked_at = NULL, blocked_by = NULL`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(donorColumns).
				AddRow(id.String(), "Karim", "A+", "male", nil, false, nil, nil))

		donor, err := repo.SetBlocked(ctx, id, false, nil)
		require.NoError(t, err)
		require.NotNil(t, donor)
		assert.False(t, donor.IsBlocked)
		assert.Nil(t, donor.BlockedAt)
		assert.Nil(t, donor.BlockedBy)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown donor", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDonorRepository(db)

		mock.ExpectQuery(`UPDATE donors`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(donorColumns))

		donor, err := repo.SetBlocked(ctx, id, false, nil)
		require.NoError(t, err)
		assert.Nil(t, donor)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDonorRepository_ExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDonorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM donors WHERE LOWER(email) = LOWER($1))`)).
		WithArgs("rahim@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "rahim@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
