package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
)

type Service interface {
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)

	NotifyNewRequest(ctx context.Context, req *domain.BloodRequest) (int, error)
	NotifyAccepted(ctx context.Context, req *domain.BloodRequest) error
}

type service struct {
	alertRepo repository.AlertRepository
	donorRepo repository.DonorRepository
	log       *zap.Logger
}

func NewService(alertRepo repository.AlertRepository, donorRepo repository.DonorRepository, log *zap.Logger) Service {
	return &service{
		alertRepo: alertRepo,
		donorRepo: donorRepo,
		log:       log.Named("alert"),
	}
}

func (s *service) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	return s.alertRepo.List(ctx, filter)
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.alertRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alert, err := s.alertRepo.MarkAsRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, apperrors.NotFound("alert")
	}
	return alert, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	return s.alertRepo.MarkAllAsRead(ctx, userID)
}

// NotifyNewRequest writes one broadcast alert and one alert per donor of the
// same blood group. Individual write failures are logged and skipped; the
// returned count is the number of alerts actually stored.
func (s *service) NotifyNewRequest(ctx context.Context, req *domain.BloodRequest) (int, error) {
	relatedID := req.ID.String()
	created := 0

	broadcast := &domain.Alert{
		ID:        uuid.New(),
		Type:      domain.AlertBloodRequest,
		Title:     "New Blood Request",
		Message:   fmt.Sprintf("%s needs %s blood at %s", req.PatientName, req.BloodGroup, req.HospitalName),
		RelatedID: &relatedID,
	}
	if err := s.alertRepo.Create(ctx, broadcast); err != nil {
		s.log.Error("failed to create broadcast alert", zap.String("request_id", relatedID), zap.Error(err))
	} else {
		created++
	}

	donors, err := s.donorRepo.ListByBloodGroup(ctx, req.BloodGroup)
	if err != nil {
		return created, fmt.Errorf("failed to list donors for %s: %w", req.BloodGroup, err)
	}

	for _, donor := range donors {
		donorID := donor.ID.String()
		alert := &domain.Alert{
			ID:        uuid.New(),
			Type:      domain.AlertBloodRequest,
			Title:     "Blood Request Match",
			Message:   fmt.Sprintf("A patient needs %s blood. You can help!", req.BloodGroup),
			RelatedID: &relatedID,
			UserID:    &donorID,
		}
		if err := s.alertRepo.Create(ctx, alert); err != nil {
			s.log.Error("failed to create donor alert",
				zap.String("request_id", relatedID),
				zap.String("donor_id", donorID),
				zap.Error(err),
			)
			continue
		}
		created++
	}

	return created, nil
}

func (s *service) NotifyAccepted(ctx context.Context, req *domain.BloodRequest) error {
	relatedID := req.ID.String()
	acceptedBy := domain.AnonymousAcceptor
	if req.AcceptedBy != nil {
		acceptedBy = *req.AcceptedBy
	}

	alert := &domain.Alert{
		ID:        uuid.New(),
		Type:      domain.AlertDonorAccepted,
		Title:     "Request Accepted",
		Message:   fmt.Sprintf("%s has accepted your blood request", acceptedBy),
		RelatedID: &relatedID,
	}
	return s.alertRepo.Create(ctx, alert)
}
