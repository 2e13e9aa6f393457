// Package view computes role-scoped projections of directory and ledger
// data. Project is a pure function over an immutable snapshot: every refresh
// cycle builds a fresh Snapshot and projects it, and no view model is ever
// mutated in place after it has been handed out.
package view

import (
	"errors"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
)

// ErrUnsupportedRole is returned for a role outside the recognized enum.
var ErrUnsupportedRole = errors.New("unsupported role")

// Snapshot is an immutable capture of the data a single projection needs.
// Builders scope it per role before projecting; the projector only filters
// and shapes, it never reaches back into a store.
type Snapshot struct {
	Users            []model.User
	Appointments     []model.Appointment
	Teachers         []model.TeacherOption
	AppointmentTotal int
}

// Project computes the ViewModel a role/identity pair may see:
//   - Admin: the full directory plus the appointment total
//   - Teacher: appointments addressed to the teacher, pending rows annotated
//     with the approve/decline actions, terminal rows read-only
//   - Student: the student's own appointments (read-only) plus the live
//     availability index for composing a new request
func Project(role model.Role, identity int, snap Snapshot) (*model.ViewModel, error) {
	vm := &model.ViewModel{Role: role, Identity: identity}

	switch role {
	case model.RoleAdmin:
		vm.Directory = make([]model.DirectoryRow, 0, len(snap.Users))
		for _, u := range snap.Users {
			vm.Directory = append(vm.Directory, model.DirectoryRow{
				ID:     u.ID,
				Name:   u.Name,
				Role:   u.Role,
				Status: u.Status,
			})
		}
		vm.AppointmentTotal = snap.AppointmentTotal

	case model.RoleTeacher:
		vm.Appointments = make([]model.AppointmentView, 0, len(snap.Appointments))
		for _, a := range snap.Appointments {
			if a.TeacherID != identity {
				continue
			}
			row := model.AppointmentView{Appointment: a}
			if a.Status == model.AppointmentPending {
				row.Actions = []model.AppointmentAction{model.ActionApprove, model.ActionDecline}
			}
			vm.Appointments = append(vm.Appointments, row)
		}

	case model.RoleStudent:
		vm.Appointments = make([]model.AppointmentView, 0, len(snap.Appointments))
		for _, a := range snap.Appointments {
			if a.StudentID != identity {
				continue
			}
			vm.Appointments = append(vm.Appointments, model.AppointmentView{Appointment: a})
		}
		vm.Teachers = make([]model.TeacherOption, 0, len(snap.Teachers))
		vm.Teachers = append(vm.Teachers, snap.Teachers...)

	default:
		return nil, ErrUnsupportedRole
	}

	return vm, nil
}
