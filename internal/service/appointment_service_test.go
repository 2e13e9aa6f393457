package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type appointmentFixture struct {
	svc       *AppointmentService
	users     *fakeUserStore
	store     *fakeAppointmentStore
	notifier  *recordingNotifier
	teacherID int
	studentID int
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	ctx := context.Background()
	users := newFakeUserStore()
	store := newFakeAppointmentStore(users)
	notifier := &recordingNotifier{}

	teacher := &model.User{Name: "Ms. Chen", Role: model.RoleTeacher, Status: model.StatusActive}
	if err := users.Create(ctx, teacher); err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	student := &model.User{Name: "Bob", Role: model.RoleStudent, Status: model.StatusActive}
	if err := users.Create(ctx, student); err != nil {
		t.Fatalf("seed student: %v", err)
	}

	return &appointmentFixture{
		svc:       NewAppointmentService(store, notifier, zerolog.Nop()),
		users:     users,
		store:     store,
		notifier:  notifier,
		teacherID: teacher.ID,
		studentID: student.ID,
	}
}

func TestRequestCreatesPending(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if appt.Status != model.AppointmentPending {
		t.Errorf("status = %q, want pending", appt.Status)
	}
	if appt.ID == uuid.Nil {
		t.Error("expected assigned id")
	}
	if !f.notifier.has(model.RoleTeacher, f.teacherID) {
		t.Error("expected the addressed teacher's view invalidated")
	}
	if !f.notifier.has(model.RoleAdmin, BroadcastUserID) {
		t.Error("expected admin views invalidated")
	}
}

func TestRequestValidation(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Request(ctx, f.studentID, f.teacherID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank time: expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.Request(ctx, f.studentID, 0, "Mon 10:00"); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero teacher: expected ErrValidation, got %v", err)
	}
}

func TestRequestInactiveTeacher(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	if err := f.users.SetStatus(ctx, f.teacherID, model.StatusInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00"); !errors.Is(err, ErrUnavailableTeacher) {
		t.Fatalf("expected ErrUnavailableTeacher, got %v", err)
	}
}

func TestRequestNonTeacherTarget(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	// Booking another student is refused the same way as an inactive teacher.
	if _, err := f.svc.Request(ctx, f.studentID, f.studentID, "Mon 10:00"); !errors.Is(err, ErrUnavailableTeacher) {
		t.Fatalf("expected ErrUnavailableTeacher, got %v", err)
	}
}

func TestRequestDuplicatePending(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00"); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	// A different slot with the same teacher is fine.
	if _, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Tue 11:00"); err != nil {
		t.Fatalf("different slot: %v", err)
	}
}

func TestDecideApprove(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00")
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := f.svc.Decide(ctx, appt.ID, f.teacherID, model.AppointmentApproved); err != nil {
		t.Fatalf("decide: %v", err)
	}

	got, err := f.store.GetByID(ctx, appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.AppointmentApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
	if got.DecidedAt == nil {
		t.Error("expected decided_at set")
	}
	if !f.notifier.has(model.RoleStudent, f.studentID) {
		t.Error("expected the requesting student's view invalidated")
	}
}

func TestDecideTerminalIsFinal(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := f.svc.Decide(ctx, appt.ID, f.teacherID, model.AppointmentDeclined); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// No terminal state can be re-decided, not even to the same value.
	for _, decision := range []model.AppointmentStatus{model.AppointmentApproved, model.AppointmentDeclined} {
		if err := f.svc.Decide(ctx, appt.ID, f.teacherID, decision); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("re-decide to %s: expected ErrInvalidTransition, got %v", decision, err)
		}
	}

	got, err := f.store.GetByID(ctx, appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.AppointmentDeclined {
		t.Errorf("status = %q, want declined untouched", got.Status)
	}
}

func TestDecideWrongTeacher(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	other := &model.User{Name: "Mr. Roy", Role: model.RoleTeacher, Status: model.StatusActive}
	if err := f.users.Create(ctx, other); err != nil {
		t.Fatalf("seed other teacher: %v", err)
	}

	appt, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00")
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := f.svc.Decide(ctx, appt.ID, other.ID, model.AppointmentApproved); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, err := f.store.GetByID(ctx, appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.AppointmentPending {
		t.Errorf("status = %q, refused decision must not mutate", got.Status)
	}
}

func TestDecideUnknownAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	if err := f.svc.Decide(ctx, uuid.New(), f.teacherID, model.AppointmentApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecideRejectsNonTerminal(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Request(ctx, f.studentID, f.teacherID, "Mon 10:00")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := f.svc.Decide(ctx, appt.ID, f.teacherID, model.AppointmentPending); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	forStudent, err := f.svc.ListForStudent(ctx, f.studentID)
	if err != nil {
		t.Fatalf("list student: %v", err)
	}
	if forStudent == nil {
		t.Error("student list should be empty, not nil")
	}
	forTeacher, err := f.svc.ListForTeacher(ctx, f.teacherID)
	if err != nil {
		t.Fatalf("list teacher: %v", err)
	}
	if forTeacher == nil {
		t.Error("teacher list should be empty, not nil")
	}
}
