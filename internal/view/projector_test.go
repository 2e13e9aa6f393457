package view

import (
	"errors"
	"testing"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/google/uuid"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Users: []model.User{
			{ID: 1, Name: "Admin", Role: model.RoleAdmin, Status: model.StatusActive},
			{ID: 2, Name: "Ms. Chen", Role: model.RoleTeacher, Status: model.StatusActive},
			{ID: 3, Name: "Bob", Role: model.RoleStudent, Status: model.StatusActive},
		},
		Appointments: []model.Appointment{
			{ID: uuid.New(), StudentID: 3, TeacherID: 2, RequestedTime: "Mon 10:00", Status: model.AppointmentPending},
			{ID: uuid.New(), StudentID: 3, TeacherID: 2, RequestedTime: "Tue 11:00", Status: model.AppointmentApproved},
			{ID: uuid.New(), StudentID: 4, TeacherID: 2, RequestedTime: "Wed 09:00", Status: model.AppointmentPending},
			{ID: uuid.New(), StudentID: 3, TeacherID: 5, RequestedTime: "Thu 14:00", Status: model.AppointmentDeclined},
		},
		Teachers: []model.TeacherOption{
			{ID: 2, Name: "Ms. Chen"},
		},
		AppointmentTotal: 4,
	}
}

func TestProjectAdmin(t *testing.T) {
	vm, err := Project(model.RoleAdmin, 1, sampleSnapshot())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(vm.Directory) != 3 {
		t.Errorf("directory rows = %d, want 3", len(vm.Directory))
	}
	if vm.AppointmentTotal != 4 {
		t.Errorf("appointment total = %d, want 4", vm.AppointmentTotal)
	}
	if len(vm.Appointments) != 0 || len(vm.Teachers) != 0 {
		t.Error("admin view should not carry appointment rows or the booking index")
	}
}

func TestProjectTeacherScopesAndAnnotates(t *testing.T) {
	vm, err := Project(model.RoleTeacher, 2, sampleSnapshot())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(vm.Appointments) != 3 {
		t.Fatalf("rows = %d, want the 3 addressed to teacher 2", len(vm.Appointments))
	}
	for _, row := range vm.Appointments {
		if row.TeacherID != 2 {
			t.Errorf("row for teacher %d leaked into teacher 2's view", row.TeacherID)
		}
		if row.Status == model.AppointmentPending {
			if len(row.Actions) != 2 {
				t.Errorf("pending row actions = %v, want approve+decline", row.Actions)
			}
		} else if len(row.Actions) != 0 {
			t.Errorf("terminal row %s carries actions %v", row.Status, row.Actions)
		}
	}
}

func TestProjectStudentOwnRowsReadOnly(t *testing.T) {
	vm, err := Project(model.RoleStudent, 3, sampleSnapshot())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(vm.Appointments) != 3 {
		t.Fatalf("rows = %d, want student 3's own 3", len(vm.Appointments))
	}
	for _, row := range vm.Appointments {
		if row.StudentID != 3 {
			t.Errorf("row for student %d leaked into student 3's view", row.StudentID)
		}
		if len(row.Actions) != 0 {
			t.Errorf("student rows are read-only, got actions %v", row.Actions)
		}
	}
	if len(vm.Teachers) != 1 || vm.Teachers[0].ID != 2 {
		t.Errorf("teachers = %v, want the availability index", vm.Teachers)
	}
}

func TestProjectUnknownRole(t *testing.T) {
	_, err := Project(model.Role("Janitor"), 1, sampleSnapshot())
	if !errors.Is(err, ErrUnsupportedRole) {
		t.Fatalf("expected ErrUnsupportedRole, got %v", err)
	}
}

func TestProjectEmptySnapshot(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleTeacher, model.RoleStudent} {
		vm, err := Project(role, 1, Snapshot{})
		if err != nil {
			t.Fatalf("%s: %v", role, err)
		}
		switch role {
		case model.RoleAdmin:
			if vm.Directory == nil {
				t.Errorf("%s: directory should be empty, not nil", role)
			}
		case model.RoleTeacher, model.RoleStudent:
			if vm.Appointments == nil {
				t.Errorf("%s: appointments should be empty, not nil", role)
			}
		}
	}
}
