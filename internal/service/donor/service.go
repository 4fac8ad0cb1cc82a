package donor

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/media"
	"blood-connect/internal/validation"
)

type Service interface {
	Register(ctx context.Context, caller *domain.Identity, input domain.RegisterDonorInput, avatar *media.File) (*domain.Donor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)
	GetMine(ctx context.Context, caller *domain.Identity) (*domain.Donor, error)
	UpdateMine(ctx context.Context, caller *domain.Identity, input domain.UpdateDonorInput) (*domain.Donor, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateDonorInput) (*domain.Donor, error)
	Block(ctx context.Context, admin *domain.Identity, id uuid.UUID) (*domain.Donor, error)
	Unblock(ctx context.Context, admin *domain.Identity, id uuid.UUID) (*domain.Donor, error)
}

type service struct {
	donorRepo repository.DonorRepository
	auditRepo repository.AuditLogRepository
	mediaSvc  media.Service
	log       *zap.Logger
	now       func() time.Time
}

func NewService(donorRepo repository.DonorRepository, auditRepo repository.AuditLogRepository, mediaSvc media.Service, log *zap.Logger) Service {
	return &service{
		donorRepo: donorRepo,
		auditRepo: auditRepo,
		mediaSvc:  mediaSvc,
		log:       log.Named("donor"),
		now:       time.Now,
	}
}

func (s *service) Register(ctx context.Context, caller *domain.Identity, input domain.RegisterDonorInput, avatar *media.File) (*domain.Donor, error) {
	input.Normalize()
	if caller != nil && caller.Email != "" {
		input.Email = strings.ToLower(caller.Email)
	}

	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	dob, err := domain.ParseOptionalDate(input.DOB)
	if err != nil {
		return nil, apperrors.Invalid("field 'dob' must be a date")
	}
	lastDonation, err := domain.ParseOptionalDate(input.LastDonation)
	if err != nil {
		return nil, apperrors.Invalid("field 'lastDonation' must be a date")
	}

	if input.Email != "" {
		exists, err := s.donorRepo.ExistsByEmailAndBloodGroup(ctx, input.Email, input.BloodGroup)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrDonorExists
		}

		exists, err = s.donorRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrDonorExists
		}
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	donor := &domain.Donor{
		ID:                uuid.New(),
		Name:              input.Name,
		BloodGroup:        input.BloodGroup,
		Gender:            input.Gender,
		District:          input.District,
		Upazila:           input.Upazila,
		Area:              input.Area,
		Address:           input.Address,
		MedicalConditions: input.MedicalConditions,
		Phone:             domain.StringPtr(input.Phone),
		Email:             domain.StringPtr(input.Email),
		Visibility:        visibility,
		DOB:               dob,
		LastDonation:      lastDonation,
		DonationsCount:    input.DonationsCount,
		IsAvailable:       input.IsAvailable,
	}
	if caller != nil {
		donor.UserID = domain.StringPtr(caller.ID())
	}

	if avatar != nil {
		url, err := s.mediaSvc.UploadAvatar(ctx, avatar)
		switch {
		case errors.Is(err, media.ErrStorageUnavailable):
			s.log.Warn("avatar dropped, media storage is not configured", zap.String("donor_id", donor.ID.String()))
		case err != nil:
			return nil, err
		default:
			donor.Avatar = url
		}
	}

	if err := s.donorRepo.Create(ctx, donor); err != nil {
		return nil, err
	}

	s.withAvailability(donor)
	return donor, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	donor, err := s.donorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, apperrors.NotFound("donor")
	}
	s.withAvailability(donor)
	return donor, nil
}

func (s *service) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	donors, err := s.donorRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range donors {
		s.withAvailability(&donors[i])
	}
	return donors, nil
}

func (s *service) GetMine(ctx context.Context, caller *domain.Identity) (*domain.Donor, error) {
	donor, err := s.findOwned(ctx, caller)
	if err != nil {
		return nil, err
	}
	s.withAvailability(donor)
	return donor, nil
}

func (s *service) UpdateMine(ctx context.Context, caller *domain.Identity, input domain.UpdateDonorInput) (*domain.Donor, error) {
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	donor, err := s.findOwned(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.patch(ctx, donor, input)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateDonorInput) (*domain.Donor, error) {
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	donor, err := s.donorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, apperrors.NotFound("donor")
	}
	return s.patch(ctx, donor, input)
}

func (s *service) Block(ctx context.Context, admin *domain.Identity, id uuid.UUID) (*domain.Donor, error) {
	adminID := admin.ID()
	return s.setBlocked(ctx, adminID, id, true, &adminID)
}

func (s *service) Unblock(ctx context.Context, admin *domain.Identity, id uuid.UUID) (*domain.Donor, error) {
	return s.setBlocked(ctx, admin.ID(), id, false, nil)
}

func (s *service) setBlocked(ctx context.Context, actorID string, id uuid.UUID, blocked bool, blockedBy *string) (*domain.Donor, error) {
	donor, err := s.donorRepo.SetBlocked(ctx, id, blocked, blockedBy)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, apperrors.NotFound("donor")
	}

	action := domain.AuditDonorBlocked
	if !blocked {
		action = domain.AuditDonorUnblocked
	}
	err = repository.CreateAuditLog(ctx, s.auditRepo, domain.CreateAuditLogInput{
		ActorID:    actorID,
		Action:     action,
		EntityType: domain.EntityDonor,
		EntityID:   donor.ID,
		OldValue:   map[string]bool{"isBlocked": !blocked},
		NewValue:   map[string]bool{"isBlocked": blocked},
	})
	if err != nil {
		s.log.Error("failed to write audit log", zap.String("action", action), zap.Error(err))
	}

	s.withAvailability(donor)
	return donor, nil
}

// findOwned resolves the caller's donor profile by email, then user id,
// then the digits of the phone number. The first hit wins.
func (s *service) findOwned(ctx context.Context, caller *domain.Identity) (*domain.Donor, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if caller.Email != "" {
		donor, err := s.donorRepo.GetByEmail(ctx, caller.Email)
		if err != nil || donor != nil {
			return donor, err
		}
	}

	donor, err := s.donorRepo.GetByUserID(ctx, caller.ID())
	if err != nil || donor != nil {
		return donor, err
	}

	if digits := digitsOnly(caller.Phone); digits != "" {
		donor, err := s.donorRepo.GetByPhoneDigits(ctx, digits)
		if err != nil || donor != nil {
			return donor, err
		}
	}

	return nil, apperrors.NotFound("donor profile")
}

func (s *service) patch(ctx context.Context, donor *domain.Donor, input domain.UpdateDonorInput) (*domain.Donor, error) {
	if input.Name != nil {
		donor.Name = strings.TrimSpace(*input.Name)
	}
	if input.BloodGroup != nil {
		donor.BloodGroup = *input.BloodGroup
	}
	if input.Gender != nil {
		donor.Gender = strings.TrimSpace(*input.Gender)
	}
	if input.District != nil {
		donor.District = strings.TrimSpace(*input.District)
	}
	if input.Upazila != nil {
		donor.Upazila = strings.TrimSpace(*input.Upazila)
	}
	if input.Area != nil {
		donor.Area = strings.TrimSpace(*input.Area)
	}
	if input.Address != nil {
		donor.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		donor.Phone = domain.StringPtr(strings.TrimSpace(*input.Phone))
	}
	if input.MedicalConditions != nil {
		donor.MedicalConditions = *input.MedicalConditions
	}
	if input.Visibility != nil {
		donor.Visibility = *input.Visibility
	}
	if input.DonationsCount != nil {
		donor.DonationsCount = *input.DonationsCount
	}
	if input.IsAvailable != nil {
		donor.IsAvailable = input.IsAvailable
	}
	if input.Avatar != nil {
		donor.Avatar = *input.Avatar
	}
	if input.DOB != nil {
		dob, err := domain.ParseOptionalDate(*input.DOB)
		if err != nil {
			return nil, apperrors.Invalid("field 'dob' must be a date")
		}
		donor.DOB = dob
	}
	if input.LastDonation != nil {
		last, err := domain.ParseOptionalDate(*input.LastDonation)
		if err != nil {
			return nil, apperrors.Invalid("field 'lastDonation' must be a date")
		}
		donor.LastDonation = last
	}

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		return nil, err
	}

	s.withAvailability(donor)
	return donor, nil
}

func (s *service) withAvailability(donor *domain.Donor) {
	donor.Availability = donor.GetAvailability(s.now())
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
