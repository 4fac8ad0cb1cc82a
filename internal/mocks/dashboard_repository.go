package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) DonorGroupCounts(ctx context.Context) ([]domain.BloodGroupCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BloodGroupCount), args.Error(1)
}

func (m *DashboardRepository) RequestStatusCounts(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RequestStatus]int64), args.Error(1)
}

func (m *DashboardRepository) CountPatients(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DashboardRepository) CountStories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DashboardRepository) LastRequestAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
