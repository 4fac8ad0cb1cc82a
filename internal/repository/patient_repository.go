package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blood-connect/internal/domain"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error)
}

type patientRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewPatientRepository(db *sqlx.DB) PatientRepository {
	return &patientRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	query := `
		INSERT INTO patients (id, first_name, last_name, email, phone, date_of_birth, gender,
			address, city, state, zip_code, country, medical_conditions, current_medications,
			allergies, emergency_contact_name, emergency_contact_phone, event_interest,
			preferred_session, preferred_time_slot, questions, how_did_you_hear, additional_notes)
		VALUES (:id, :first_name, :last_name, :email, :phone, :date_of_birth, :gender,
			:address, :city, :state, :zip_code, :country, :medical_conditions, :current_medications,
			:allergies, :emergency_contact_name, :emergency_contact_phone, :event_interest,
			:preferred_session, :preferred_time_slot, :questions, :how_did_you_hear, :additional_notes)
		RETURNING created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, patient)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&patient.CreatedAt)
	}
	return rows.Err()
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	var patient domain.Patient
	query := `SELECT * FROM patients WHERE id = $1`

	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM patients WHERE email = $1)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *patientRepository) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error) {
	const op = "repository.patient.List"

	builder := r.sq.Select("*").From("patients")
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"phone": pattern},
		})
	}
	if filter.EventInterest != "" {
		builder = builder.Where(sq.Eq{"event_interest": filter.EventInterest})
	}

	switch filter.Sort {
	case "oldest":
		builder = builder.OrderBy("created_at ASC")
	case "name":
		builder = builder.OrderBy("first_name ASC", "last_name ASC")
	default:
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	patients := []domain.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return patients, nil
}
