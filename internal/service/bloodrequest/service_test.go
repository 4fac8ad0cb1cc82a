package bloodrequest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/mocks"
	"blood-connect/internal/service/bloodrequest"
)

type fixture struct {
	reqRepo   *mocks.BloodRequestRepository
	donorRepo *mocks.DonorRepository
	auditRepo *mocks.AuditLogRepository
	alertSvc  *mocks.AlertService
	svc       bloodrequest.Service
}

func newFixture() *fixture {
	f := &fixture{
		reqRepo:   new(mocks.BloodRequestRepository),
		donorRepo: new(mocks.DonorRepository),
		auditRepo: new(mocks.AuditLogRepository),
		alertSvc:  new(mocks.AlertService),
	}
	f.svc = bloodrequest.NewService(f.reqRepo, f.donorRepo, f.auditRepo, f.alertSvc, zap.NewNop())
	return f
}

func validInput() domain.BloodRequestInput {
	return domain.BloodRequestInput{
		PatientName:     "Karim",
		Age:             42,
		BloodGroup:      "O-",
		NeededUnits:     2,
		HospitalName:    "Dhaka Medical",
		HospitalAddress: "Bakshibazar",
		Phone:           "01711000000",
		NeededDate:      "2026-11-01",
	}
}

func TestBloodRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults and alerts", func(t *testing.T) {
		f := newFixture()
		caller := &domain.Identity{UserID: uuid.New()}

		f.reqRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.BloodRequest) bool {
			return r.Status == domain.StatusPending &&
				r.EmergencyLevel == domain.EmergencyNormal &&
				r.NeededTime == "12:00" &&
				r.CreatedBy != nil && *r.CreatedBy == caller.UserID.String()
		})).Return(nil).Once()
		f.alertSvc.On("NotifyNewRequest", ctx, mock.AnythingOfType("*domain.BloodRequest")).Return(3, nil).Once()

		req, err := f.svc.Create(ctx, caller, validInput())

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), req.NeededDate)
		assert.Nil(t, req.WardBedNumber)
		f.reqRepo.AssertExpectations(t)
		f.alertSvc.AssertExpectations(t)
	})

	t.Run("Anonymous caller", func(t *testing.T) {
		f := newFixture()
		f.reqRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.BloodRequest) bool {
			return r.CreatedBy == nil
		})).Return(nil).Once()
		f.alertSvc.On("NotifyNewRequest", ctx, mock.Anything).Return(1, nil).Once()

		_, err := f.svc.Create(ctx, nil, validInput())

		require.NoError(t, err)
	})

	t.Run("Alert failure does not fail the request", func(t *testing.T) {
		f := newFixture()
		f.reqRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.alertSvc.On("NotifyNewRequest", ctx, mock.Anything).Return(1, errors.New("donor lookup failed")).Once()

		req, err := f.svc.Create(ctx, nil, validInput())

		require.NoError(t, err)
		assert.NotNil(t, req)
	})

	t.Run("Blank required field", func(t *testing.T) {
		f := newFixture()
		input := validInput()
		input.HospitalName = "  "

		_, err := f.svc.Create(ctx, nil, input)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Age out of range", func(t *testing.T) {
		f := newFixture()
		input := validInput()
		input.Age = 151

		_, err := f.svc.Create(ctx, nil, input)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Unparseable date", func(t *testing.T) {
		f := newFixture()
		input := validInput()
		input.NeededDate = "next tuesday"

		_, err := f.svc.Create(ctx, nil, input)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestBloodRequestService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending request is accepted", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		name := "Rahim"
		accepted := &domain.BloodRequest{ID: id, Status: domain.StatusAccepted, AcceptedBy: &name}

		f.reqRepo.On("Accept", ctx, id, "Rahim").Return(accepted, nil).Once()
		f.alertSvc.On("NotifyAccepted", ctx, accepted).Return(nil).Once()

		req, err := f.svc.Accept(ctx, id, domain.AcceptRequestInput{DonorID: "d1", DonorName: "Rahim"})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, req.Status)
		f.alertSvc.AssertExpectations(t)
	})

	t.Run("Acceptor falls back to donor id then Anonymous", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("Accept", ctx, id, "d1").Return(&domain.BloodRequest{ID: id}, nil).Once()
		f.reqRepo.On("Accept", ctx, id, "Anonymous").Return(&domain.BloodRequest{ID: id}, nil).Once()
		f.alertSvc.On("NotifyAccepted", ctx, mock.Anything).Return(nil).Twice()

		_, err := f.svc.Accept(ctx, id, domain.AcceptRequestInput{DonorID: "d1"})
		require.NoError(t, err)
		_, err = f.svc.Accept(ctx, id, domain.AcceptRequestInput{})
		require.NoError(t, err)

		f.reqRepo.AssertExpectations(t)
	})

	t.Run("Already accepted is a conflict", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("Accept", ctx, id, "Second").Return(nil, nil).Once()
		f.reqRepo.On("GetByID", ctx, id).Return(&domain.BloodRequest{ID: id, Status: domain.StatusAccepted}, nil).Once()

		req, err := f.svc.Accept(ctx, id, domain.AcceptRequestInput{DonorName: "Second"})

		assert.Nil(t, req)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.alertSvc.AssertNotCalled(t, "NotifyAccepted", mock.Anything, mock.Anything)
	})

	t.Run("Unknown request", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("Accept", ctx, id, "Anonymous").Return(nil, nil).Once()
		f.reqRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.Accept(ctx, id, domain.AcceptRequestInput{})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestBloodRequestService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := &domain.Identity{UserID: ownerID, Role: domain.RoleUser}
	stranger := &domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}
	admin := &domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}

	existing := func(id uuid.UUID) *domain.BloodRequest {
		createdBy := ownerID.String()
		return &domain.BloodRequest{ID: id, Status: domain.StatusAccepted, CreatedBy: &createdBy}
	}

	t.Run("Owner overwrites fields and keeps status", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(existing(id), nil).Once()
		f.reqRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.BloodRequest) bool {
			return r.PatientName == "Karim" && r.Status == domain.StatusAccepted
		})).Return(nil).Once()

		req, err := f.svc.Update(ctx, owner, id, validInput())

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, req.Status)
	})

	t.Run("Admin may update any request", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(existing(id), nil).Once()
		f.reqRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.Update(ctx, admin, id, validInput())

		require.NoError(t, err)
	})

	t.Run("Other users are forbidden", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(existing(id), nil).Once()

		_, err := f.svc.Update(ctx, stranger, id, validInput())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.reqRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Anonymous requests can only be edited by admins", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(&domain.BloodRequest{ID: id}, nil).Once()

		_, err := f.svc.Update(ctx, stranger, id, validInput())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestBloodRequestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Completed back to pending is allowed", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(&domain.BloodRequest{ID: id, Status: domain.StatusCompleted}, nil).Once()
		f.reqRepo.On("SetStatus", ctx, id, domain.StatusPending).Return(&domain.BloodRequest{ID: id, Status: domain.StatusPending}, nil).Once()
		f.auditRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.AuditStatusOverride && l.ActorID == nil &&
				string(l.OldValue) == `{"status":"completed"}` && string(l.NewValue) == `{"status":"pending"}`
		})).Return(nil).Once()

		req, err := f.svc.SetStatus(ctx, nil, id, domain.StatusPatchInput{Status: "pending"})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, req.Status)
		f.auditRepo.AssertExpectations(t)
	})

	t.Run("Invalid status", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.SetStatus(ctx, nil, uuid.New(), domain.StatusPatchInput{Status: "cancelled"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Unknown request", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.SetStatus(ctx, nil, id, domain.StatusPatchInput{Status: "completed"})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestBloodRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	createdBy := ownerID.String()

	t.Run("Owner deletes", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(&domain.BloodRequest{ID: id, CreatedBy: &createdBy}, nil).Once()
		f.reqRepo.On("Delete", ctx, id).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		err := f.svc.Delete(ctx, &domain.Identity{UserID: ownerID}, id)

		require.NoError(t, err)
		f.reqRepo.AssertExpectations(t)
	})

	t.Run("Anonymous caller", func(t *testing.T) {
		f := newFixture()

		err := f.svc.Delete(ctx, nil, uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestBloodRequestService_Match(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := uuid.New()

	old := time.Now().AddDate(-1, 0, 0)
	donors := []domain.Donor{
		{ID: uuid.New(), BloodGroup: "O-"},
		{ID: uuid.New(), BloodGroup: "O-", LastDonation: &old, Gender: "male"},
	}
	f.reqRepo.On("GetByID", ctx, id).Return(&domain.BloodRequest{ID: id, BloodGroup: "O-"}, nil).Once()
	f.donorRepo.On("FindMatches", ctx, "O-", 10).Return(donors, nil).Once()

	req, got, err := f.svc.Match(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, id, req.ID)
	require.Len(t, got, 2)
	assert.False(t, got[0].Availability)
	assert.True(t, got[1].Availability)
}
