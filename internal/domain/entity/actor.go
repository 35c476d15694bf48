package entity

import "github.com/google/uuid"

// Actor is the authenticated caller resolved from a User and its profiles.
type Actor struct {
	UserID    uuid.UUID
	Email     string
	FullName  string
	IsAdmin   bool
	PatientID *uuid.UUID
	// DoctorID is only set once the doctor application has been approved.
	DoctorID *uuid.UUID
}

func NewActor(u *User) *Actor {
	return &Actor{
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin(),
		PatientID: u.PatientProfileID,
		DoctorID:  u.DoctorProfileID,
	}
}

func (a *Actor) IsDoctor() bool {
	return a != nil && a.DoctorID != nil
}

func (a *Actor) IsPatient() bool {
	return a != nil && a.PatientID != nil
}

// HasRole checks a role name against the actor's capabilities.
func (a *Actor) HasRole(role string) bool {
	switch role {
	case RoleAdmin:
		return a.IsAdmin
	case RoleDoctor:
		return a.IsDoctor()
	case RolePatient:
		return a.IsPatient()
	case RoleUser:
		return a != nil
	}
	return false
}

// IsPatientSelf reports whether patientID is the actor's own patient profile.
func (a *Actor) IsPatientSelf(patientID uuid.UUID) bool {
	return a.IsPatient() && *a.PatientID == patientID
}

// IsDoctorSelf reports whether doctorID is the actor's own doctor profile.
func (a *Actor) IsDoctorSelf(doctorID uuid.UUID) bool {
	return a.IsDoctor() && *a.DoctorID == doctorID
}

// Roles lists the capabilities for display.
func (a *Actor) Roles() []string {
	roles := []string{RoleUser}
	if a.IsAdmin {
		roles = append(roles, RoleAdmin)
	}
	if a.IsDoctor() {
		roles = append(roles, RoleDoctor)
	}
	if a.IsPatient() {
		roles = append(roles, RolePatient)
	}
	return roles
}
