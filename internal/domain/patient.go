package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCountry = "USA"

// Patient is a registration for the patient/summit intake form.
type Patient struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	FirstName             string    `json:"firstName" db:"first_name"`
	LastName              string    `json:"lastName" db:"last_name"`
	Email                 string    `json:"email" db:"email"`
	Phone                 string    `json:"phone" db:"phone"`
	DateOfBirth           time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Gender                string    `json:"gender" db:"gender"`
	Address               string    `json:"address" db:"address"`
	City                  string    `json:"city" db:"city"`
	State                 string    `json:"state" db:"state"`
	ZipCode               string    `json:"zipCode" db:"zip_code"`
	Country               string    `json:"country" db:"country"`
	MedicalConditions     string    `json:"medicalConditions" db:"medical_conditions"`
	CurrentMedications    string    `json:"currentMedications" db:"current_medications"`
	Allergies             string    `json:"allergies" db:"allergies"`
	EmergencyContactName  string    `json:"emergencyContactName" db:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergencyContactPhone" db:"emergency_contact_phone"`
	EventInterest         string    `json:"eventInterest" db:"event_interest"`
	PreferredSession      string    `json:"preferredSession" db:"preferred_session"`
	PreferredTimeSlot     string    `json:"preferredTimeSlot" db:"preferred_time_slot"`
	Questions             string    `json:"questions" db:"questions"`
	HowDidYouHear         string    `json:"howDidYouHear" db:"how_did_you_hear"`
	AdditionalNotes       string    `json:"additionalNotes" db:"additional_notes"`
	CreatedAt             time.Time `json:"createdAt" db:"created_at"`
}

type RegisterPatientInput struct {
	FirstName             string `json:"firstName" validate:"required"`
	LastName              string `json:"lastName" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Phone                 string `json:"phone" validate:"required"`
	DateOfBirth           string `json:"dateOfBirth" validate:"required"`
	Gender                string `json:"gender" validate:"required"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	ZipCode               string `json:"zipCode"`
	Country               string `json:"country"`
	MedicalConditions     string `json:"medicalConditions"`
	CurrentMedications    string `json:"currentMedications"`
	Allergies             string `json:"allergies"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
	EventInterest         string `json:"eventInterest"`
	PreferredSession      string `json:"preferredSession"`
	PreferredTimeSlot     string `json:"preferredTimeSlot"`
	Questions             string `json:"questions"`
	HowDidYouHear         string `json:"howDidYouHear"`
	AdditionalNotes       string `json:"additionalNotes"`
}

func (in *RegisterPatientInput) Normalize() {
	fields := []*string{
		&in.FirstName, &in.LastName, &in.Phone, &in.DateOfBirth, &in.Gender,
		&in.Address, &in.City, &in.State, &in.ZipCode, &in.Country,
		&in.MedicalConditions, &in.CurrentMedications, &in.Allergies,
		&in.EmergencyContactName, &in.EmergencyContactPhone, &in.EventInterest,
		&in.PreferredSession, &in.PreferredTimeSlot, &in.Questions,
		&in.HowDidYouHear, &in.AdditionalNotes,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Country == "" {
		in.Country = DefaultCountry
	}
}

type PatientFilter struct {
	Search        string
	EventInterest string
	Sort          string
}
