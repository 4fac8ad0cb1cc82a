package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
	"blood-connect/internal/mocks"
	"blood-connect/internal/service/dashboard"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Totals are summed across groups", func(t *testing.T) {
		repo := new(mocks.DashboardRepository)
		repo.On("DonorGroupCounts", ctx).Return([]domain.BloodGroupCount{
			{BloodGroup: "A+", Total: 4, Blocked: 1},
			{BloodGroup: "O-", Total: 2, Blocked: 1},
		}, nil).Once()
		repo.On("RequestStatusCounts", ctx).Return(map[domain.RequestStatus]int64{
			domain.StatusPending: 3, domain.StatusCompleted: 5,
		}, nil).Once()
		repo.On("CountPatients", ctx).Return(int64(7), nil).Once()
		repo.On("CountStories", ctx).Return(int64(2), nil).Once()
		repo.On("LastRequestAt", ctx).Return(nil, nil).Once()

		stats, err := dashboard.NewService(repo, nil).GetStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(6), stats.TotalDonors)
		assert.Equal(t, int64(2), stats.BlockedDonors)
		assert.Equal(t, int64(3), stats.PendingRequests)
		assert.Equal(t, int64(0), stats.AcceptedRequests)
		assert.Equal(t, int64(5), stats.CompletedRequests)
		assert.Equal(t, int64(7), stats.TotalPatients)
		assert.Nil(t, stats.LastRequestAt)
		repo.AssertExpectations(t)
	})

	t.Run("Empty database", func(t *testing.T) {
		repo := new(mocks.DashboardRepository)
		repo.On("DonorGroupCounts", ctx).Return(nil, nil).Once()
		repo.On("RequestStatusCounts", ctx).Return(map[domain.RequestStatus]int64{}, nil).Once()
		repo.On("CountPatients", ctx).Return(int64(0), nil).Once()
		repo.On("CountStories", ctx).Return(int64(0), nil).Once()
		repo.On("LastRequestAt", ctx).Return(nil, nil).Once()

		stats, err := dashboard.NewService(repo, nil).GetStats(ctx)

		require.NoError(t, err)
		assert.NotNil(t, stats.DonorsByGroup)
		assert.Zero(t, stats.TotalDonors)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(mocks.DashboardRepository)
		repo.On("DonorGroupCounts", ctx).Return(nil, errors.New("db down")).Once()

		_, err := dashboard.NewService(repo, nil).GetStats(ctx)

		assert.Error(t, err)
	})
}
