package model

// AppointmentAction is a legal next action a role may take on an appointment row.
type AppointmentAction string

const (
	ActionApprove AppointmentAction = "approve"
	ActionDecline AppointmentAction = "decline"
)

// AppointmentView is one row of a role-scoped appointment projection.
// Actions is populated only for the addressed teacher while the row is pending;
// terminal rows are read-only.
type AppointmentView struct {
	Appointment
	Actions []AppointmentAction `json:"actions,omitempty"`
}

// DirectoryRow is one row of the admin's full-directory projection.
type DirectoryRow struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Role   Role       `json:"role"`
	Status UserStatus `json:"status"`
}

// ViewModel is the role-scoped projection handed to the presentation layer.
// Exactly one of the role sections is populated:
//   - Admin: Directory plus the total appointment count
//   - Teacher: Appointments addressed to the teacher, with legal actions
//   - Student: own Appointments plus the live availability index
type ViewModel struct {
	Role     Role `json:"role"`
	Identity int  `json:"identity"`

	Directory        []DirectoryRow    `json:"directory,omitempty"`
	AppointmentTotal int               `json:"appointment_total,omitempty"`
	Appointments     []AppointmentView `json:"appointments,omitempty"`
	Teachers         []TeacherOption   `json:"teachers,omitempty"`
}
