package service

import (
	"context"
	"errors"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/view"
)

// ViewService assembles role-scoped snapshots and runs the projector over
// them. Each Load builds a fresh snapshot; nothing survives past the call,
// so a view can never observe data older than the last committed mutation.
type ViewService struct {
	users        UserStore
	appointments AppointmentStore
}

// NewViewService creates a new ViewService.
func NewViewService(users UserStore, appointments AppointmentStore) *ViewService {
	return &ViewService{users: users, appointments: appointments}
}

// Load queries the scoped data for (role, identity) and projects it.
func (s *ViewService) Load(ctx context.Context, role model.Role, identity int) (*model.ViewModel, error) {
	snap, err := s.snapshot(ctx, role, identity)
	if err != nil {
		return nil, err
	}

	vm, err := view.Project(role, identity, snap)
	if err != nil {
		if errors.Is(err, view.ErrUnsupportedRole) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return vm, nil
}

func (s *ViewService) snapshot(ctx context.Context, role model.Role, identity int) (view.Snapshot, error) {
	var snap view.Snapshot
	var err error

	switch role {
	case model.RoleAdmin:
		if snap.Users, err = s.users.List(ctx); err != nil {
			return snap, err
		}
		if snap.AppointmentTotal, err = s.appointments.CountAll(ctx); err != nil {
			return snap, err
		}

	case model.RoleTeacher:
		if snap.Appointments, err = s.appointments.ListByTeacher(ctx, identity); err != nil {
			return snap, err
		}

	case model.RoleStudent:
		if snap.Appointments, err = s.appointments.ListByStudent(ctx, identity); err != nil {
			return snap, err
		}
		if snap.Teachers, err = s.users.ListActiveTeachers(ctx); err != nil {
			return snap, err
		}
	}

	return snap, nil
}
