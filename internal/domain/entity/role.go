package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants, seeded by the initial migration.
const (
	RoleIDAdmin = 1
	RoleIDUser  = 2
)

// Role names. Doctor and patient are capabilities derived from the profiles a
// user owns, not stored roles.
const (
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)
