package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusCompleted RequestStatus = "completed"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted:
		return true
	default:
		return false
	}
}

const (
	EmergencyNormal   = "normal"
	EmergencyUrgent   = "urgent"
	EmergencyCritical = "critical"

	DefaultNeededTime = "12:00"
	AnonymousAcceptor = "Anonymous"

	// MatchLimit caps the donor candidates returned for one request.
	MatchLimit = 10
)

type BloodRequest struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	PatientName     string        `json:"patientName" db:"patient_name"`
	Age             int           `json:"age" db:"age"`
	BloodGroup      string        `json:"bloodGroup" db:"blood_group"`
	NeededUnits     int           `json:"neededUnits" db:"needed_units"`
	HospitalName    string        `json:"hospitalName" db:"hospital_name"`
	HospitalAddress string        `json:"hospitalAddress" db:"hospital_address"`
	WardBedNumber   *string       `json:"wardBedNumber" db:"ward_bed_number"`
	Phone           string        `json:"phone" db:"phone"`
	EmergencyLevel  string        `json:"emergencyLevel" db:"emergency_level"`
	NeededDate      time.Time     `json:"neededDate" db:"needed_date"`
	NeededTime      string        `json:"neededTime" db:"needed_time"`
	ReasonNotes     *string       `json:"reasonNotes" db:"reason_notes"`
	Status          RequestStatus `json:"status" db:"status"`
	AcceptedBy      *string       `json:"acceptedBy" db:"accepted_by"`
	CreatedBy       *string       `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

// BloodRequestInput is shared by create and full update.
type BloodRequestInput struct {
	PatientName     string `json:"patientName" validate:"required"`
	Age             int    `json:"age" validate:"required,min=1,max=150"`
	BloodGroup      string `json:"bloodGroup" validate:"required,blood_group"`
	NeededUnits     int    `json:"neededUnits" validate:"required,min=1"`
	HospitalName    string `json:"hospitalName" validate:"required"`
	HospitalAddress string `json:"hospitalAddress" validate:"required"`
	WardBedNumber   string `json:"wardBedNumber"`
	Phone           string `json:"phone" validate:"required"`
	EmergencyLevel  string `json:"emergencyLevel" validate:"omitempty,oneof=normal urgent critical"`
	NeededDate      string `json:"neededDate" validate:"required"`
	NeededTime      string `json:"neededTime"`
	ReasonNotes     string `json:"reasonNotes"`
}

// Normalize trims text fields and fills defaults so blank values fail validation.
func (in *BloodRequestInput) Normalize() {
	in.PatientName = strings.TrimSpace(in.PatientName)
	in.BloodGroup = strings.TrimSpace(in.BloodGroup)
	in.HospitalName = strings.TrimSpace(in.HospitalName)
	in.HospitalAddress = strings.TrimSpace(in.HospitalAddress)
	in.WardBedNumber = strings.TrimSpace(in.WardBedNumber)
	in.Phone = strings.TrimSpace(in.Phone)
	in.NeededDate = strings.TrimSpace(in.NeededDate)
	in.NeededTime = strings.TrimSpace(in.NeededTime)
	in.ReasonNotes = strings.TrimSpace(in.ReasonNotes)

	if in.EmergencyLevel == "" {
		in.EmergencyLevel = EmergencyNormal
	}
	if in.NeededTime == "" {
		in.NeededTime = DefaultNeededTime
	}
}

type AcceptRequestInput struct {
	DonorID   string `json:"donorId"`
	DonorName string `json:"donorName"`
}

// Acceptor picks the name recorded in acceptedBy.
func (in AcceptRequestInput) Acceptor() string {
	if name := strings.TrimSpace(in.DonorName); name != "" {
		return name
	}
	if id := strings.TrimSpace(in.DonorID); id != "" {
		return id
	}
	return AnonymousAcceptor
}

type StatusPatchInput struct {
	Status string `json:"status" validate:"required,oneof=pending accepted completed"`
}

type BloodRequestFilter struct {
	Status     string
	BloodGroup string
}
