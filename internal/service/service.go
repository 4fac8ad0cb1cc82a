package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"blood-connect/internal/config"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/alert"
	"blood-connect/internal/service/audit"
	"blood-connect/internal/service/auth"
	"blood-connect/internal/service/bloodrequest"
	"blood-connect/internal/service/dashboard"
	"blood-connect/internal/service/donor"
	"blood-connect/internal/service/email"
	"blood-connect/internal/service/export"
	"blood-connect/internal/service/media"
	"blood-connect/internal/service/patient"
	"blood-connect/internal/service/story"
)

type Services struct {
	Auth         auth.Service
	Donor        donor.Service
	BloodRequest bloodrequest.Service
	Alert        alert.Service
	Story        story.Service
	Patient      patient.Service
	Media        media.Service
	Email        email.Service
	Audit        audit.Service
	Export       export.Service
	Dashboard    dashboard.Service
}

// NewServices wires every service. redis and minioClient may be nil; the
// story and dashboard caches and avatar uploads are then disabled.
func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, log *zap.Logger) *Services {
	emailService := email.NewService(cfg, log)
	mediaService := media.NewService(minioClient, cfg)
	alertService := alert.NewService(repos.Alert, repos.Donor, log)

	return &Services{
		Auth:         auth.NewService(repos.User, repos.Session, emailService, cfg, log),
		Donor:        donor.NewService(repos.Donor, repos.AuditLog, mediaService, log),
		BloodRequest: bloodrequest.NewService(repos.BloodRequest, repos.Donor, repos.AuditLog, alertService, log),
		Alert:        alertService,
		Story:        story.NewService(repos.Story, redis, cfg.StoryCacheTTL, log),
		Patient:      patient.NewService(repos.Patient, emailService, log),
		Media:        mediaService,
		Email:        emailService,
		Audit:        audit.NewService(repos.AuditLog),
		Export:       export.NewService(repos.Donor),
		Dashboard:    dashboard.NewService(repos.Dashboard, redis),
	}
}
