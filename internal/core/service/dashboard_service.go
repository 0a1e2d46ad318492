package service

import (
	"context"
	"time"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

const recentAppointmentsLimit = 5

// DashboardService composes the admin dashboard snapshot from the user and
// appointment repositories. Nothing is cached; every call recomputes.
type DashboardService struct {
	users ports.UserRepository
	appts ports.AppointmentRepository
}

func NewDashboardService(users ports.UserRepository, appts ports.AppointmentRepository) *DashboardService {
	return &DashboardService{users: users, appts: appts}
}

func (s *DashboardService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	roleCounts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.appts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range statusCounts {
		total += n
	}

	from, to := domain.DayBucket(time.Now().UTC())
	today, err := s.appts.CountInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	recent, err := s.appts.FindRecent(ctx, recentAppointmentsLimit)
	if err != nil {
		return nil, err
	}
	recentViews, err := appointmentViews(ctx, s.users, recent)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		Users: ports.UserCounts{
			Doctors:       roleCounts[domain.RoleDoctor],
			Patients:      roleCounts[domain.RolePatient],
			Receptionists: roleCounts[domain.RoleReceptionist],
		},
		Appointments: ports.AppointmentCounts{
			Total:     total,
			Pending:   statusCounts[domain.StatusPending],
			Completed: statusCounts[domain.StatusCompleted],
			Cancelled: statusCounts[domain.StatusCancelled],
			Today:     today,
		},
		RecentAppointments: recentViews,
	}, nil
}
