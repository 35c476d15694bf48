package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	AccountStatusActive                AccountStatus = "active"
	AccountStatusPendingDoctorApproval AccountStatus = "pending_doctor_approval"
	AccountStatusSuspended             AccountStatus = "suspended"
)

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusPendingDoctorApproval, AccountStatusSuspended:
		return true
	}
	return false
}

// Gender constants
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer_not_to_say"
)

// User is the unified identity record. A user owns at most one Patient and
// one Doctor profile; uniqueness lives on the profiles' user_id columns.
type User struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID           int           `gorm:"not null;index" json:"role_id"`
	Email            string        `gorm:"type:varchar(255);uniqueIndex:uq_users_email;not null" json:"email"`
	Password         string        `gorm:"type:text;not null" json:"-"`
	FullName         string        `gorm:"type:varchar(255);not null" json:"full_name"`
	DateOfBirth      time.Time     `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string        `gorm:"type:varchar(32);not null" json:"gender"`
	Phone            string        `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Address          string        `gorm:"type:text" json:"address,omitempty"`
	AccountStatus    AccountStatus `gorm:"type:varchar(32);not null;default:'active';index" json:"account_status"`
	PatientProfileID *uuid.UUID    `gorm:"type:uuid" json:"patient_profile_id,omitempty"`
	DoctorProfileID  *uuid.UUID    `gorm:"type:uuid" json:"doctor_profile_id,omitempty"`
	LastLoginAt      *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleIDAdmin
}

func (u *User) IsSuspended() bool {
	return u.AccountStatus == AccountStatusSuspended
}

// AgeAt derives age from the date of birth; patients do not store it.
func (u *User) AgeAt(now time.Time) int {
	years := now.Year() - u.DateOfBirth.Year()
	if now.Month() < u.DateOfBirth.Month() ||
		(now.Month() == u.DateOfBirth.Month() && now.Day() < u.DateOfBirth.Day()) {
		years--
	}
	return years
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	AccountStatus AccountStatus
	Search        string
	Limit         int
	Offset        int
}
