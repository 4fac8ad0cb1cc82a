package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blood-connect/internal/domain"
)

type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	List(ctx context.Context, filter domain.BloodRequestFilter) ([]domain.BloodRequest, error)
	Update(ctx context.Context, req *domain.BloodRequest) error
	Accept(ctx context.Context, id uuid.UUID, acceptedBy string) (*domain.BloodRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.BloodRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bloodRequestRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewBloodRequestRepository(db *sqlx.DB) BloodRequestRepository {
	return &bloodRequestRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *bloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	query := `
		INSERT INTO blood_requests (id, patient_name, age, blood_group, needed_units, hospital_name,
			hospital_address, ward_bed_number, phone, emergency_level, needed_date, needed_time,
			reason_notes, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.PatientName, req.Age, req.BloodGroup, req.NeededUnits, req.HospitalName,
		req.HospitalAddress, req.WardBedNumber, req.Phone, req.EmergencyLevel, req.NeededDate,
		req.NeededTime, req.ReasonNotes, req.Status, req.CreatedBy,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	query := `SELECT * FROM blood_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *bloodRequestRepository) List(ctx context.Context, filter domain.BloodRequestFilter) ([]domain.BloodRequest, error) {
	const op = "repository.bloodRequest.List"

	builder := r.sq.Select("*").From("blood_requests").OrderBy("created_at DESC")
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.BloodGroup != "" {
		builder = builder.Where(sq.Eq{"blood_group": filter.BloodGroup})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	requests := []domain.BloodRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return requests, nil
}

// Update overwrites the editable fields. Status and acceptedBy are not touched.
func (r *bloodRequestRepository) Update(ctx context.Context, req *domain.BloodRequest) error {
	query := `
		UPDATE blood_requests
		SET patient_name = :patient_name, age = :age, blood_group = :blood_group,
			needed_units = :needed_units, hospital_name = :hospital_name,
			hospital_address = :hospital_address, ward_bed_number = :ward_bed_number,
			phone = :phone, emergency_level = :emergency_level, needed_date = :needed_date,
			needed_time = :needed_time, reason_notes = :reason_notes, updated_at = NOW()
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, req)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Accept moves a pending request to accepted in one statement. It returns
// nil, nil when the row is missing or no longer pending.
func (r *bloodRequestRepository) Accept(ctx context.Context, id uuid.UUID, acceptedBy string) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	query := `
		UPDATE blood_requests
		SET status = $3, accepted_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING *`

	err := r.db.GetContext(ctx, &req, query, id, acceptedBy, domain.StatusAccepted, domain.StatusPending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *bloodRequestRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	query := `UPDATE blood_requests SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING *`

	err := r.db.GetContext(ctx, &req, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *bloodRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blood_requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
