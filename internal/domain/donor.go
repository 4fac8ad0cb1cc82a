package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCooldownDays = 90
	FemaleCooldownDays  = 180

	VisibilityPublic = "public"
	VisibilityOnlyMe = "only_me"

	SortLastOldest = "lastOldest"
	SortLastNewest = "lastNewest"
	SortName       = "name"
)

type Donor struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	BloodGroup        string     `json:"bloodGroup" db:"blood_group"`
	Gender            string     `json:"gender" db:"gender"`
	District          string     `json:"district" db:"district"`
	Upazila           string     `json:"upazila" db:"upazila"`
	Area              string     `json:"area" db:"area"`
	Address           string     `json:"address" db:"address"`
	MedicalConditions string     `json:"medicalConditions" db:"medical_conditions"`
	Phone             *string    `json:"phone" db:"phone"`
	Email             *string    `json:"email,omitempty" db:"email"`
	Visibility        string     `json:"visibility" db:"visibility"`
	UserID            *string    `json:"userId,omitempty" db:"user_id"`
	DOB               *time.Time `json:"dob" db:"dob"`
	LastDonation      *time.Time `json:"lastDonation" db:"last_donation"`
	DonationsCount    int        `json:"donationsCount" db:"donations_count"`
	Avatar            string     `json:"avatar" db:"avatar"`
	IsAvailable       *bool      `json:"isAvailable" db:"is_available"`
	IsBlocked         bool       `json:"isBlocked" db:"is_blocked"`
	BlockedAt         *time.Time `json:"blockedAt" db:"blocked_at"`
	BlockedBy         *string    `json:"blockedBy" db:"blocked_by"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`

	Availability bool `json:"availability" db:"-"`
}

// CooldownDays is the minimum gap between donations for this donor.
func (d *Donor) CooldownDays() int {
	if strings.EqualFold(d.Gender, "female") {
		return FemaleCooldownDays
	}
	return DefaultCooldownDays
}

// CalculatedAvailability derives eligibility from the last donation date.
// A donor with no recorded donation is reported unavailable.
func (d *Donor) CalculatedAvailability(now time.Time) bool {
	if d.LastDonation == nil {
		return false
	}
	elapsed := math.Floor(now.Sub(*d.LastDonation).Hours() / 24)
	return elapsed >= float64(d.CooldownDays())
}

// GetAvailability prefers the manual flag when it has been set.
func (d *Donor) GetAvailability(now time.Time) bool {
	if d.IsAvailable != nil {
		return *d.IsAvailable
	}
	return d.CalculatedAvailability(now)
}

type RegisterDonorInput struct {
	Name              string `json:"name" form:"name" validate:"required"`
	BloodGroup        string `json:"bloodGroup" form:"bloodGroup" validate:"required,blood_group"`
	Gender            string `json:"gender" form:"gender" validate:"required"`
	District          string `json:"district" form:"district" validate:"required"`
	Upazila           string `json:"upazila" form:"upazila" validate:"required"`
	Area              string `json:"area" form:"area" validate:"required"`
	Address           string `json:"address" form:"address"`
	Phone             string `json:"phone" form:"phone"`
	Email             string `json:"email" form:"email" validate:"omitempty,email"`
	DOB               string `json:"dob" form:"dob"`
	LastDonation      string `json:"lastDonation" form:"lastDonation"`
	DonationsCount    int    `json:"donationsCount" form:"donationsCount" validate:"min=0"`
	MedicalConditions string `json:"medicalConditions" form:"medicalConditions"`
	Visibility        string `json:"visibility" form:"visibility" validate:"omitempty,oneof=public only_me"`
	IsAvailable       *bool  `json:"isAvailable" form:"isAvailable"`
}

func (in *RegisterDonorInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Gender = strings.TrimSpace(in.Gender)
	in.District = strings.TrimSpace(in.District)
	in.Upazila = strings.TrimSpace(in.Upazila)
	in.Area = strings.TrimSpace(in.Area)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.MedicalConditions = strings.TrimSpace(in.MedicalConditions)
}

// UpdateDonorInput is a partial patch; nil fields are left untouched.
type UpdateDonorInput struct {
	Name              *string `json:"name" validate:"omitempty,min=1"`
	BloodGroup        *string `json:"bloodGroup" validate:"omitempty,blood_group"`
	Gender            *string `json:"gender" validate:"omitempty,min=1"`
	District          *string `json:"district" validate:"omitempty,min=1"`
	Upazila           *string `json:"upazila" validate:"omitempty,min=1"`
	Area              *string `json:"area" validate:"omitempty,min=1"`
	Address           *string `json:"address"`
	Phone             *string `json:"phone"`
	DOB               *string `json:"dob"`
	LastDonation      *string `json:"lastDonation"`
	DonationsCount    *int    `json:"donationsCount" validate:"omitempty,min=0"`
	MedicalConditions *string `json:"medicalConditions"`
	Visibility        *string `json:"visibility" validate:"omitempty,oneof=public only_me"`
	IsAvailable       *bool   `json:"isAvailable"`
	Avatar            *string `json:"avatar"`
}

type DonorFilter struct {
	BloodGroup     string
	Gender         string
	Search         string
	Sort           string
	IncludeBlocked bool
}
