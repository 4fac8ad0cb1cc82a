package patient

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/email"
	"blood-connect/internal/validation"
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterPatientInput) (*domain.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error)
}

type service struct {
	patientRepo  repository.PatientRepository
	emailService email.Service
	log          *zap.Logger
}

func NewService(patientRepo repository.PatientRepository, emailService email.Service, log *zap.Logger) Service {
	return &service{
		patientRepo:  patientRepo,
		emailService: emailService,
		log:          log.Named("patient"),
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterPatientInput) (*domain.Patient, error) {
	input.Normalize()
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	dob, err := domain.ParseDate(input.DateOfBirth)
	if err != nil {
		return nil, apperrors.Invalid("field 'dateOfBirth' must be a date")
	}

	exists, err := s.patientRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrPatientExists
	}

	patient := &domain.Patient{
		ID:                    uuid.New(),
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		Email:                 input.Email,
		Phone:                 input.Phone,
		DateOfBirth:           dob,
		Gender:                input.Gender,
		Address:               input.Address,
		City:                  input.City,
		State:                 input.State,
		ZipCode:               input.ZipCode,
		Country:               input.Country,
		MedicalConditions:     input.MedicalConditions,
		CurrentMedications:    input.CurrentMedications,
		Allergies:             input.Allergies,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		EventInterest:         input.EventInterest,
		PreferredSession:      input.PreferredSession,
		PreferredTimeSlot:     input.PreferredTimeSlot,
		Questions:             input.Questions,
		HowDidYouHear:         input.HowDidYouHear,
		AdditionalNotes:       input.AdditionalNotes,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	go func() {
		name := patient.FirstName + " " + patient.LastName
		err := s.emailService.SendPatientConfirmation(context.Background(), patient.Email, name,
			patient.EventInterest, patient.PreferredSession, patient.PreferredTimeSlot)
		if err != nil {
			s.log.Warn("failed to send confirmation email", zap.String("patient_id", patient.ID.String()), zap.Error(err))
		}
	}()

	return patient, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient")
	}
	return patient, nil
}

func (s *service) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error) {
	return s.patientRepo.List(ctx, filter)
}
