package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type DonorRepository struct {
	mock.Mock
}

func (m *DonorRepository) Create(ctx context.Context, donor *domain.Donor) error {
	args := m.Called(ctx, donor)
	return args.Error(0)
}

func (m *DonorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	args := m.Called(ctx, id)
	return donorOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) GetByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	args := m.Called(ctx, email)
	return donorOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	args := m.Called(ctx, userID)
	return donorOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) GetByPhoneDigits(ctx context.Context, digits string) (*domain.Donor, error) {
	args := m.Called(ctx, digits)
	return donorOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *DonorRepository) ExistsByEmailAndBloodGroup(ctx context.Context, email, bloodGroup string) (bool, error) {
	args := m.Called(ctx, email, bloodGroup)
	return args.Bool(0), args.Error(1)
}

func (m *DonorRepository) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	args := m.Called(ctx, filter)
	return donorsOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) ListByBloodGroup(ctx context.Context, bloodGroup string) ([]domain.Donor, error) {
	args := m.Called(ctx, bloodGroup)
	return donorsOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) FindMatches(ctx context.Context, bloodGroup string, limit int) ([]domain.Donor, error) {
	args := m.Called(ctx, bloodGroup, limit)
	return donorsOrNil(args.Get(0)), args.Error(1)
}

func (m *DonorRepository) Update(ctx context.Context, donor *domain.Donor) error {
	args := m.Called(ctx, donor)
	return args.Error(0)
}

func (m *DonorRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, blockedBy *string) (*domain.Donor, error) {
	args := m.Called(ctx, id, blocked, blockedBy)
	return donorOrNil(args.Get(0)), args.Error(1)
}

func donorOrNil(v interface{}) *domain.Donor {
	if v == nil {
		return nil
	}
	return v.(*domain.Donor)
}

func donorsOrNil(v interface{}) []domain.Donor {
	if v == nil {
		return nil
	}
	return v.([]domain.Donor)
}
