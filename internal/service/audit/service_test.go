package audit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
	"blood-connect/internal/mocks"
	"blood-connect/internal/service/audit"
)

func TestAuditService_GetRecentActivities(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.AuditLogRepository)
	svc := audit.NewService(repo)

	logs := []domain.AuditLog{{ID: uuid.New(), Action: domain.AuditDonorBlocked}}
	repo.On("List", ctx, domain.PaginationParams{Page: 1, PageSize: 100}).Return(logs, int64(1), nil).Once()

	got, err := svc.GetRecentActivities(ctx, 500)

	require.NoError(t, err)
	assert.Equal(t, logs, got)
	repo.AssertExpectations(t)
}

func TestAuditService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.AuditLogRepository)
	svc := audit.NewService(repo)

	repo.On("List", ctx, domain.PaginationParams{Page: 2, PageSize: 20}).Return([]domain.AuditLog{}, int64(45), nil).Once()

	page, err := svc.List(ctx, domain.PaginationParams{Page: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.NotNil(t, page.Data)
}
