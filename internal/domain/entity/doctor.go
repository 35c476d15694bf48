package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ApprovalStatus is the doctor application state: pending -> approved | rejected.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

type Specialization string

const (
	SpecializationCardiology       Specialization = "cardiology"
	SpecializationDermatology      Specialization = "dermatology"
	SpecializationEndocrinology    Specialization = "endocrinology"
	SpecializationGastroenterology Specialization = "gastroenterology"
	SpecializationNeurology        Specialization = "neurology"
	SpecializationPediatrics       Specialization = "pediatrics"
	SpecializationPsychiatry       Specialization = "psychiatry"
	SpecializationRadiology        Specialization = "radiology"
	SpecializationSurgery          Specialization = "surgery"
	SpecializationGeneralPractice  Specialization = "general_practice"
	SpecializationOrthopedics      Specialization = "orthopedics"
	SpecializationOphthalmology    Specialization = "ophthalmology"
)

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type TimeSlot struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AppointmentType string `json:"appointment_type,omitempty"`
	MaxPatients     int    `json:"max_patients"`
}

type DaySchedule struct {
	Available bool       `json:"available"`
	Slots     []TimeSlot `json:"slots"`
}

// AvailabilitySchedule is keyed by lowercase weekday name.
type AvailabilitySchedule map[string]DaySchedule

func DefaultAvailabilitySchedule() AvailabilitySchedule {
	schedule := make(AvailabilitySchedule, len(Weekdays))
	for _, day := range Weekdays {
		schedule[day] = DaySchedule{Available: false, Slots: []TimeSlot{}}
	}
	return schedule
}

// Valid reports whether every key is a weekday and every slot is an HH:MM
// range that ends after it starts.
func (a AvailabilitySchedule) Valid() bool {
	for day, schedule := range a {
		if !isWeekday(day) {
			return false
		}
		for _, slot := range schedule.Slots {
			start, err := time.Parse("15:04", slot.StartTime)
			if err != nil {
				return false
			}
			end, err := time.Parse("15:04", slot.EndTime)
			if err != nil || !end.After(start) {
				return false
			}
			if slot.MaxPatients < 0 {
				return false
			}
		}
	}
	return true
}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

type Qualification struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Year           int    `json:"year,omitempty"`
	CertificateURL string `json:"certificate_url,omitempty"`
}

// Doctor is the clinical-provider profile owned 1:1 by a User.
type Doctor struct {
	ID                   uuid.UUID                                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID               uuid.UUID                                `gorm:"type:uuid;not null;uniqueIndex:uq_doctors_user_id" json:"user_id"`
	MedicalLicenseNumber string                                   `gorm:"type:varchar(64);not null;uniqueIndex:uq_doctors_license" json:"medical_license_number"`
	Specialization       Specialization                           `gorm:"type:varchar(32);not null;index" json:"specialization"`
	DoctorCode           string                                   `gorm:"type:varchar(32);not null;uniqueIndex" json:"doctor_code"`
	ApprovalStatus       ApprovalStatus                           `gorm:"type:varchar(16);not null;default:'pending';index" json:"approval_status"`
	ApprovedBy           *uuid.UUID                               `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovalDate         *time.Time                               `json:"approval_date,omitempty"`
	RejectionReason      string                                   `gorm:"type:text" json:"rejection_reason,omitempty"`
	HospitalAffiliation  string                                   `gorm:"type:varchar(255);index" json:"hospital_affiliation,omitempty"`
	Department           string                                   `gorm:"type:varchar(255)" json:"department,omitempty"`
	YearsOfExperience    int                                      `json:"years_of_experience"`
	ConsultationFee      decimal.Decimal                          `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Availability         datatypes.JSONType[AvailabilitySchedule] `gorm:"type:jsonb" json:"availability"`
	Qualifications       datatypes.JSONSlice[Qualification]       `gorm:"type:jsonb" json:"qualifications"`
	Rating               decimal.Decimal                          `gorm:"type:decimal(10,2);not null;default:0" json:"rating"`
	TotalReviews         int                                      `gorm:"not null;default:0" json:"total_reviews"`
	Bio                  string                                   `gorm:"type:text" json:"bio,omitempty"`
	LanguagesSpoken      datatypes.JSONSlice[string]              `gorm:"type:jsonb" json:"languages_spoken"`
	CreatedAt            time.Time                                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                                `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) IsPending() bool {
	return d.ApprovalStatus == ApprovalStatusPending
}

func (d *Doctor) IsApproved() bool {
	return d.ApprovalStatus == ApprovalStatusApproved
}

// Approve moves a pending application to approved. It reports false when the
// application is not pending.
func (d *Doctor) Approve(approverID uuid.UUID, at time.Time) bool {
	if !d.IsPending() {
		return false
	}
	d.ApprovalStatus = ApprovalStatusApproved
	d.ApprovedBy = &approverID
	d.ApprovalDate = &at
	return true
}

// Reject moves a pending application to rejected.
func (d *Doctor) Reject(approverID uuid.UUID, reason string, at time.Time) bool {
	if !d.IsPending() {
		return false
	}
	d.ApprovalStatus = ApprovalStatusRejected
	d.ApprovedBy = &approverID
	d.ApprovalDate = &at
	d.RejectionReason = reason
	return true
}

// AverageRating divides the rating accumulator by the review count, one decimal place.
func (d *Doctor) AverageRating() decimal.Decimal {
	if d.TotalReviews == 0 {
		return decimal.Zero
	}
	return d.Rating.Div(decimal.NewFromInt(int64(d.TotalReviews))).Round(1)
}

// AvailableDays lists the weekdays marked available, in calendar order.
func (d *Doctor) AvailableDays() []string {
	schedule := d.Availability.Data()
	days := make([]string, 0, len(schedule))
	for _, day := range Weekdays {
		if s, ok := schedule[day]; ok && s.Available {
			days = append(days, day)
		}
	}
	return days
}

// DoctorFilter narrows application listings.
type DoctorFilter struct {
	ApprovalStatus ApprovalStatus
	Limit          int
	Offset         int
}
