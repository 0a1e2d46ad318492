package domain

import "time"

// Medicine is a single line item on a prescription. Name, dosage, and
// frequency are mandatory; the rest are free-form hints for the pharmacy.
type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription is issued by a doctor against exactly one appointment. The
// patient reference is copied from the appointment at creation time and the
// medicine list is immutable afterwards.
type Prescription struct {
	ID            string     `json:"id"`
	AppointmentID string     `json:"appointment_id"`
	DoctorID      string     `json:"doctor_id"`
	PatientID     string     `json:"patient_id"`
	Medicines     []Medicine `json:"medicines"`
	Diagnosis     string     `json:"diagnosis,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty"`
	IssuedDate    time.Time  `json:"issued_date"`
	Refills       int        `json:"refills"`
	IsRefillable  bool       `json:"is_refillable"`
	CreatedAt     time.Time  `json:"created_at"`
}
