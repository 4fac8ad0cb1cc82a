package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Donor        DonorRepository
	BloodRequest BloodRequestRepository
	Alert        AlertRepository
	Patient      PatientRepository
	Story        StoryRepository
	AuditLog     AuditLogRepository
	Dashboard    DashboardRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Donor:        NewDonorRepository(db),
		BloodRequest: NewBloodRequestRepository(db),
		Alert:        NewAlertRepository(db),
		Patient:      NewPatientRepository(db),
		Story:        NewStoryRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Dashboard:    NewDashboardRepository(db),
	}
}
