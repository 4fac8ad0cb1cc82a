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

type DonorRepository interface {
	Create(ctx context.Context, donor *domain.Donor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Donor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Donor, error)
	GetByPhoneDigits(ctx context.Context, digits string) (*domain.Donor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailAndBloodGroup(ctx context.Context, email, bloodGroup string) (bool, error)
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)
	ListByBloodGroup(ctx context.Context, bloodGroup string) ([]domain.Donor, error)
	FindMatches(ctx context.Context, bloodGroup string, limit int) ([]domain.Donor, error)
	Update(ctx context.Context, donor *domain.Donor) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, blockedBy *string) (*domain.Donor, error)
}

type donorRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewDonorRepository(db *sqlx.DB) DonorRepository {
	return &donorRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *donorRepository) Create(ctx context.Context, donor *domain.Donor) error {
	query := `
		INSERT INTO donors (id, name, blood_group, gender, district, upazila, area, address,
			medical_conditions, phone, email, visibility, user_id, dob, last_donation,
			donations_count, avatar, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		donor.ID, donor.Name, donor.BloodGroup, donor.Gender, donor.District, donor.Upazila,
		donor.Area, donor.Address, donor.MedicalConditions, donor.Phone, donor.Email,
		donor.Visibility, donor.UserID, donor.DOB, donor.LastDonation, donor.DonationsCount,
		donor.Avatar, donor.IsAvailable,
	).Scan(&donor.CreatedAt, &donor.UpdatedAt)
}

func (r *donorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	return r.getOne(ctx, `SELECT * FROM donors WHERE id = $1`, id)
}

func (r *donorRepository) GetByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	return r.getOne(ctx, `SELECT * FROM donors WHERE LOWER(email) = LOWER($1) ORDER BY created_at LIMIT 1`, email)
}

func (r *donorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	return r.getOne(ctx, `SELECT * FROM donors WHERE user_id = $1 ORDER BY created_at LIMIT 1`, userID)
}

// GetByPhoneDigits compares phone numbers with every non-digit stripped.
func (r *donorRepository) GetByPhoneDigits(ctx context.Context, digits string) (*domain.Donor, error) {
	query := `
		SELECT * FROM donors
		WHERE phone IS NOT NULL AND regexp_replace(phone, '[^0-9]', '', 'g') = $1
		ORDER BY created_at LIMIT 1`
	return r.getOne(ctx, query, digits)
}

func (r *donorRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Donor, error) {
	var donor domain.Donor
	err := r.db.GetContext(ctx, &donor, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

func (r *donorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM donors WHERE LOWER(email) = LOWER($1))`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *donorRepository) ExistsByEmailAndBloodGroup(ctx context.Context, email, bloodGroup string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM donors WHERE LOWER(email) = LOWER($1) AND blood_group = $2)`
	err := r.db.GetContext(ctx, &exists, query, email, bloodGroup)
	return exists, err
}

func (r *donorRepository) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	const op = "repository.donor.List"

	builder := r.sq.Select("*").From("donors")

	if !filter.IncludeBlocked {
		builder = builder.Where(sq.Eq{"is_blocked": false})
	}
	if filter.BloodGroup != "" {
		builder = builder.Where(sq.Eq{"blood_group": filter.BloodGroup})
	}
	if filter.Gender != "" {
		builder = builder.Where(sq.Expr("LOWER(gender) = LOWER(?)", filter.Gender))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"area": pattern},
			sq.ILike{"district": pattern},
			sq.ILike{"upazila": pattern},
		})
	}

	switch filter.Sort {
	case domain.SortLastOldest:
		builder = builder.OrderBy("last_donation ASC NULLS FIRST")
	case domain.SortLastNewest:
		builder = builder.OrderBy("last_donation DESC NULLS LAST")
	case domain.SortName:
		builder = builder.OrderBy("name ASC")
	default:
		builder = builder.OrderBy("created_at ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	donors := []domain.Donor{}
	if err := r.db.SelectContext(ctx, &donors, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return donors, nil
}

func (r *donorRepository) ListByBloodGroup(ctx context.Context, bloodGroup string) ([]domain.Donor, error) {
	donors := []domain.Donor{}
	query := `SELECT * FROM donors WHERE blood_group = $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &donors, query, bloodGroup)
	return donors, err
}

// FindMatches orders by last donation with never-donated donors first.
// Blocked and unavailable donors are not filtered out.
func (r *donorRepository) FindMatches(ctx context.Context, bloodGroup string, limit int) ([]domain.Donor, error) {
	donors := []domain.Donor{}
	query := `
		SELECT * FROM donors
		WHERE blood_group = $1
		ORDER BY last_donation ASC NULLS FIRST, created_at ASC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &donors, query, bloodGroup, limit)
	return donors, err
}

func (r *donorRepository) Update(ctx context.Context, donor *domain.Donor) error {
	query := `
		UPDATE donors
		SET name = :name, blood_group = :blood_group, gender = :gender, district = :district,
			upazila = :upazila, area = :area, address = :address,
			medical_conditions = :medical_conditions, phone = :phone, visibility = :visibility,
			dob = :dob, last_donation = :last_donation, donations_count = :donations_count,
			avatar = :avatar, is_available = :is_available, updated_at = NOW()
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, donor)
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

// SetBlocked writes all three moderation columns together; unblocking clears them.
func (r *donorRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, blockedBy *string) (*domain.Donor, error) {
	var query string
	var args []interface{}
	if blocked {
		query = `
			UPDATE donors SET is_blocked = TRUE, blocked_at = NOW(), blocked_by = $2, updated_at = NOW()
			WHERE id = $1 RETURNING *`
		args = []interface{}{id, blockedBy}
	} else {
		query = `
			UPDATE donors SET is_blocked = FALSE, blocked_at = NULL, blocked_by = NULL, updated_at = NOW()
			WHERE id = $1 RETURNING *`
		args = []interface{}{id}
	}

	return r.getOne(ctx, query, args...)
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
