package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type BloodRequestRepository struct {
	mock.Mock
}

func (m *BloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *BloodRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id)
	return requestOrNil(args.Get(0)), args.Error(1)
}

func (m *BloodRequestRepository) List(ctx context.Context, filter domain.BloodRequestFilter) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *BloodRequestRepository) Update(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *BloodRequestRepository) Accept(ctx context.Context, id uuid.UUID, acceptedBy string) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id, acceptedBy)
	return requestOrNil(args.Get(0)), args.Error(1)
}

func (m *BloodRequestRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id, status)
	return requestOrNil(args.Get(0)), args.Error(1)
}

func (m *BloodRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func requestOrNil(v interface{}) *domain.BloodRequest {
	if v == nil {
		return nil
	}
	return v.(*domain.BloodRequest)
}
