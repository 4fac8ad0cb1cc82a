package patient_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/mocks"
	"blood-connect/internal/service/patient"
)

func validInput() domain.RegisterPatientInput {
	return domain.RegisterPatientInput{
		FirstName:     "Ana",
		LastName:      "Silva",
		Email:         "Ana@Example.com",
		Phone:         "555-0100",
		DateOfBirth:   "1990-04-12",
		Gender:        "female",
		EventInterest: "Summit",
	}
}

func TestPatientService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.PatientRepository)
		emailSvc := new(mocks.EmailService)
		svc := patient.NewService(repo, emailSvc, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Patient) bool {
			return p.Email == "ana@example.com" && p.Country == "USA" && p.DateOfBirth.Year() == 1990
		})).Return(nil).Once()
		emailSvc.On("SendPatientConfirmation", mock.Anything, "ana@example.com", "Ana Silva", "Summit", "", "").Return(nil).Maybe()

		p, err := svc.Register(ctx, validInput())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(mocks.PatientRepository)
		svc := patient.NewService(repo, new(mocks.EmailService), zap.NewNop())
		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, validInput())

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Missing required field", func(t *testing.T) {
		svc := patient.NewService(new(mocks.PatientRepository), new(mocks.EmailService), zap.NewNop())
		input := validInput()
		input.Phone = ""

		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestPatientService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.PatientRepository)
	svc := patient.NewService(repo, new(mocks.EmailService), zap.NewNop())
	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := svc.GetByID(ctx, id)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
