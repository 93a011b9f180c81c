package health

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BloodGroup is the ABO/Rh blood group of a student
type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// IsValid checks if the group is a valid BloodGroup
func (g BloodGroup) IsValid() bool {
	switch g {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg:
		return true
	}
	return false
}

// Record is the per-student health record aggregate root.
// One record per student; BMI is derived from the latest measurements.
type Record struct {
	shared.BaseAggregateRoot
	StudentID         uuid.UUID       `json:"student_id"`
	BloodGroup        BloodGroup      `json:"blood_group"`
	Allergies         string          `json:"allergies"`
	ChronicConditions string          `json:"chronic_conditions"`
	EmergencyContact  string          `json:"emergency_contact"`
	EmergencyPhone    string          `json:"emergency_phone"`
	HeightCM          decimal.Decimal `json:"height_cm"`
	WeightKG          decimal.Decimal `json:"weight_kg"`
	BMI               decimal.Decimal `json:"bmi"`
	MeasuredAt        *time.Time      `json:"measured_at"`
}

// NewRecord creates a health record for a student
func NewRecord(studentID uuid.UUID, bloodGroup BloodGroup, emergencyContact, emergencyPhone string) (*Record, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if bloodGroup != "" && !bloodGroup.IsValid() {
		return nil, shared.NewDomainError("INVALID_BLOOD_GROUP", "Blood group is not valid")
	}
	if emergencyContact == "" || emergencyPhone == "" {
		return nil, shared.NewDomainError("INVALID_EMERGENCY_CONTACT", "Emergency contact name and phone are required")
	}

	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		BloodGroup:        bloodGroup,
		EmergencyContact:  emergencyContact,
		EmergencyPhone:    emergencyPhone,
	}, nil
}

// RecordMeasurement stores a height/weight measurement and derives BMI
func (r *Record) RecordMeasurement(heightCM, weightKG decimal.Decimal) error {
	if heightCM.LessThanOrEqual(decimal.Zero) || weightKG.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_MEASUREMENT", "Height and weight must be positive")
	}
	now := time.Now()
	r.HeightCM = heightCM
	r.WeightKG = weightKG
	meters := heightCM.Div(decimal.NewFromInt(100))
	r.BMI = weightKG.Div(meters.Mul(meters)).Round(1)
	r.MeasuredAt = &now
	r.Touch()
	return nil
}

// SetAllergies records known allergies
func (r *Record) SetAllergies(allergies string) {
	r.Allergies = allergies
	r.Touch()
}

// SetChronicConditions records chronic conditions
func (r *Record) SetChronicConditions(conditions string) {
	r.ChronicConditions = conditions
	r.Touch()
}

// UpdateEmergencyContact replaces the emergency contact details
func (r *Record) UpdateEmergencyContact(name, phone string) error {
	if name == "" || phone == "" {
		return shared.NewDomainError("INVALID_EMERGENCY_CONTACT", "Emergency contact name and phone are required")
	}
	r.EmergencyContact = name
	r.EmergencyPhone = phone
	r.Touch()
	return nil
}
