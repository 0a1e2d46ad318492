package domain

import "time"

// Role determines which routes and self-service operations a user may perform.
type Role string

const (
	RolePatient      Role = "patient"
	RoleDoctor       Role = "doctor"
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
)

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin, RoleReceptionist:
		return true
	}
	return false
}

// DoctorProfile carries the fields that only exist on doctor accounts.
type DoctorProfile struct {
	Specialization string            `json:"specialization"`
	Qualifications string            `json:"qualifications,omitempty"`
	Experience     int               `json:"experience"`
	Availability   map[string]string `json:"availability,omitempty"`
}

// PatientProfile carries the fields that only exist on patient accounts.
type PatientProfile struct {
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           string     `json:"gender,omitempty"`
	Address          string     `json:"address,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	BloodGroup       string     `json:"blood_group,omitempty"`
}

// User models any actor in the system. The role tag selects which of the two
// optional profile payloads is populated; the other stays nil.
type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role"`
	Phone        string          `json:"phone,omitempty"`
	IsActive     bool            `json:"is_active"`
	Doctor       *DoctorProfile  `json:"doctor,omitempty"`
	Patient      *PatientProfile `json:"patient,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
