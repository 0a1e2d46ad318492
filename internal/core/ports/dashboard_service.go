package ports

import "context"

// UserCounts aggregates user totals by role.
type UserCounts struct {
	Doctors       int64 `json:"total_doctors"`
	Patients      int64 `json:"total_patients"`
	Receptionists int64 `json:"total_receptionists"`
}

// AppointmentCounts aggregates appointment totals by status plus today's load.
type AppointmentCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Today     int64 `json:"today"`
}

// DashboardStats is the admin dashboard snapshot. Recomputed on every request.
type DashboardStats struct {
	Users              UserCounts        `json:"users"`
	Appointments       AppointmentCounts `json:"appointments"`
	RecentAppointments []AppointmentView `json:"recent_appointments"`
}

// DashboardService implements the aggregation/reporting component.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}
