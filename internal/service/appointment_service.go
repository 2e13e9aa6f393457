package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AppointmentService owns the appointment ledger: record creation and the
// pending → approved/declined state machine. It is the only entry point for
// status transitions; nothing else mutates appointment state.
type AppointmentService struct {
	appointments AppointmentStore
	notifier     ViewNotifier
	log          zerolog.Logger
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(appointments AppointmentStore, notifier ViewNotifier, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		notifier:     notifier,
		log:          log.With().Str("component", "appointment_service").Logger(),
	}
}

// Request creates a pending appointment for a student. Teacher availability
// is re-validated inside the insert, so a stale client list cannot book an
// inactive teacher.
func (s *AppointmentService) Request(ctx context.Context, studentID, teacherID int, requestedTime string) (*model.Appointment, error) {
	requestedTime = strings.TrimSpace(requestedTime)
	if requestedTime == "" {
		return nil, fmt.Errorf("%w: requested time is required", ErrValidation)
	}
	if teacherID <= 0 {
		return nil, fmt.Errorf("%w: teacher id is required", ErrValidation)
	}

	appointment := &model.Appointment{
		ID:            uuid.New(),
		StudentID:     studentID,
		TeacherID:     teacherID,
		RequestedTime: requestedTime,
		Status:        model.AppointmentPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		switch {
		case errors.Is(err, repository.ErrTeacherNotBookable):
			return nil, ErrUnavailableTeacher
		case errors.Is(err, repository.ErrDuplicatePending):
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", appointment.ID.String()).
		Int("student_id", studentID).
		Int("teacher_id", teacherID).
		Msg("Appointment requested")

	s.notifier.ViewInvalidated(ctx, model.RoleTeacher, teacherID)
	s.notifier.ViewInvalidated(ctx, model.RoleAdmin, BroadcastUserID)
	return appointment, nil
}

// Decide moves a pending appointment to a terminal state. Only the addressed
// teacher may decide, and only while the appointment is pending. A refused
// decision mutates nothing and is safe to repeat.
func (s *AppointmentService) Decide(ctx context.Context, id uuid.UUID, actingTeacherID int, decision model.AppointmentStatus) error {
	if !decision.Terminal() {
		return fmt.Errorf("%w: decision must be approved or declined", ErrValidation)
	}

	changed, err := s.appointments.Decide(ctx, id, actingTeacherID, decision)
	if err != nil {
		return err
	}
	if changed == 0 {
		// The compare-and-set refused; fetch the row to tell the caller why.
		appointment, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if appointment.TeacherID != actingTeacherID {
			return ErrForbidden
		}
		return ErrInvalidTransition
	}

	s.log.Info().
		Str("appointment_id", id.String()).
		Int("teacher_id", actingTeacherID).
		Str("decision", string(decision)).
		Msg("Appointment decided")

	appointment, err := s.appointments.GetByID(ctx, id)
	if err == nil {
		s.notifier.ViewInvalidated(ctx, model.RoleStudent, appointment.StudentID)
	}
	s.notifier.ViewInvalidated(ctx, model.RoleTeacher, actingTeacherID)
	s.notifier.ViewInvalidated(ctx, model.RoleAdmin, BroadcastUserID)
	return nil
}

// ListForStudent retrieves a student's own appointments, newest first.
func (s *AppointmentService) ListForStudent(ctx context.Context, studentID int) ([]model.Appointment, error) {
	appointments, err := s.appointments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []model.Appointment{}
	}
	return appointments, nil
}

// ListForTeacher retrieves appointments addressed to a teacher, newest first.
func (s *AppointmentService) ListForTeacher(ctx context.Context, teacherID int) ([]model.Appointment, error) {
	appointments, err := s.appointments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []model.Appointment{}
	}
	return appointments, nil
}
