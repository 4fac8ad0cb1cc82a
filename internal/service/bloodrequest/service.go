package bloodrequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/alert"
	"blood-connect/internal/validation"
)

type Service interface {
	Create(ctx context.Context, caller *domain.Identity, input domain.BloodRequestInput) (*domain.BloodRequest, error)
	List(ctx context.Context, filter domain.BloodRequestFilter) ([]domain.BloodRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	Accept(ctx context.Context, id uuid.UUID, input domain.AcceptRequestInput) (*domain.BloodRequest, error)
	Update(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.BloodRequestInput) (*domain.BloodRequest, error)
	SetStatus(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.StatusPatchInput) (*domain.BloodRequest, error)
	Delete(ctx context.Context, caller *domain.Identity, id uuid.UUID) error
	Match(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, []domain.Donor, error)
}

type service struct {
	reqRepo   repository.BloodRequestRepository
	donorRepo repository.DonorRepository
	auditRepo repository.AuditLogRepository
	alertSvc  alert.Service
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	reqRepo repository.BloodRequestRepository,
	donorRepo repository.DonorRepository,
	auditRepo repository.AuditLogRepository,
	alertSvc alert.Service,
	log *zap.Logger,
) Service {
	return &service{
		reqRepo:   reqRepo,
		donorRepo: donorRepo,
		auditRepo: auditRepo,
		alertSvc:  alertSvc,
		log:       log.Named("blood_request"),
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, caller *domain.Identity, input domain.BloodRequestInput) (*domain.BloodRequest, error) {
	req := &domain.BloodRequest{
		ID:     uuid.New(),
		Status: domain.StatusPending,
	}
	if err := applyInput(req, &input); err != nil {
		return nil, err
	}
	if caller != nil {
		req.CreatedBy = domain.StringPtr(caller.ID())
	}

	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	// Alerts are written after the request is stored and never roll it back.
	n, err := s.alertSvc.NotifyNewRequest(ctx, req)
	if err != nil {
		s.log.Error("alert fan-out incomplete",
			zap.String("request_id", req.ID.String()),
			zap.Int("alerts_created", n),
			zap.Error(err),
		)
	}

	return req, nil
}

func (s *service) List(ctx context.Context, filter domain.BloodRequestFilter) ([]domain.BloodRequest, error) {
	return s.reqRepo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.NotFound("blood request")
	}
	return req, nil
}

// Accept moves a pending request to accepted. The transition is a single
// conditional update, so of two concurrent accepts only one succeeds.
func (s *service) Accept(ctx context.Context, id uuid.UUID, input domain.AcceptRequestInput) (*domain.BloodRequest, error) {
	req, err := s.reqRepo.Accept(ctx, id, input.Acceptor())
	if err != nil {
		return nil, err
	}
	if req == nil {
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrRequestNotPending
	}

	if err := s.alertSvc.NotifyAccepted(ctx, req); err != nil {
		s.log.Error("failed to create accepted alert", zap.String("request_id", id.String()), zap.Error(err))
	}

	return req, nil
}

func (s *service) Update(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.BloodRequestInput) (*domain.BloodRequest, error) {
	req, err := s.ownedRequest(ctx, caller, id, "you can only update your own requests")
	if err != nil {
		return nil, err
	}

	if err := applyInput(req, &input); err != nil {
		return nil, err
	}

	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// SetStatus is an unconditional override that ignores the pending-first rule.
func (s *service) SetStatus(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.StatusPatchInput) (*domain.BloodRequest, error) {
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req, err := s.reqRepo.SetStatus(ctx, id, domain.RequestStatus(input.Status))
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.NotFound("blood request")
	}

	s.audit(ctx, domain.CreateAuditLogInput{
		ActorID:    caller.ID(),
		Action:     domain.AuditStatusOverride,
		EntityType: domain.EntityBloodRequest,
		EntityID:   id,
		OldValue:   map[string]domain.RequestStatus{"status": current.Status},
		NewValue:   map[string]domain.RequestStatus{"status": req.Status},
	})

	return req, nil
}

func (s *service) Delete(ctx context.Context, caller *domain.Identity, id uuid.UUID) error {
	req, err := s.ownedRequest(ctx, caller, id, "you can only delete your own requests")
	if err != nil {
		return err
	}

	if err := s.reqRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, domain.CreateAuditLogInput{
		ActorID:    caller.ID(),
		Action:     domain.AuditRequestDeleted,
		EntityType: domain.EntityBloodRequest,
		EntityID:   id,
		OldValue:   req,
	})
	return nil
}

// Match returns up to MatchLimit donors of exactly the requested group,
// longest since last donation first. Blocked and cooling-down donors are
// not filtered out; availability is reported on each donor instead.
func (s *service) Match(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, []domain.Donor, error) {
	req, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	donors, err := s.donorRepo.FindMatches(ctx, req.BloodGroup, domain.MatchLimit)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	for i := range donors {
		donors[i].Availability = donors[i].GetAvailability(now)
	}
	return req, donors, nil
}

func (s *service) ownedRequest(ctx context.Context, caller *domain.Identity, id uuid.UUID, reason string) (*domain.BloodRequest, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	req, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := req.CreatedBy != nil && *req.CreatedBy == caller.ID()
	if !isOwner && !caller.IsAdmin() {
		return nil, apperrors.Forbidden(reason)
	}
	return req, nil
}

func (s *service) audit(ctx context.Context, input domain.CreateAuditLogInput) {
	if err := repository.CreateAuditLog(ctx, s.auditRepo, input); err != nil {
		s.log.Error("failed to write audit log", zap.String("action", input.Action), zap.Error(err))
	}
}

// applyInput validates input and overwrites every editable field of req.
func applyInput(req *domain.BloodRequest, input *domain.BloodRequestInput) error {
	input.Normalize()
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	neededDate, err := domain.ParseDate(input.NeededDate)
	if err != nil {
		return apperrors.Invalid("field 'neededDate' must be a date")
	}

	req.PatientName = input.PatientName
	req.Age = input.Age
	req.BloodGroup = input.BloodGroup
	req.NeededUnits = input.NeededUnits
	req.HospitalName = input.HospitalName
	req.HospitalAddress = input.HospitalAddress
	req.WardBedNumber = domain.StringPtr(input.WardBedNumber)
	req.Phone = input.Phone
	req.EmergencyLevel = input.EmergencyLevel
	req.NeededDate = neededDate
	req.NeededTime = input.NeededTime
	req.ReasonNotes = domain.StringPtr(input.ReasonNotes)
	return nil
}
