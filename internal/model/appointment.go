package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the appointment lifecycle state.
// pending is initial; approved and declined are terminal.
type AppointmentStatus string

const (
	AppointmentPending  AppointmentStatus = "pending"
	AppointmentApproved AppointmentStatus = "approved"
	AppointmentDeclined AppointmentStatus = "declined"
)

// Terminal reports whether no further transition is permitted.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentApproved || s == AppointmentDeclined
}

// Appointment is a student's request for a time slot with a teacher.
type Appointment struct {
	ID            uuid.UUID         `json:"id"`
	StudentID     int               `json:"student_id"`
	TeacherID     int               `json:"teacher_id"`
	RequestedTime string            `json:"requested_time"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`

	// Display names resolved by the list queries (joined, not stored).
	StudentName string `json:"student_name,omitempty"`
	TeacherName string `json:"teacher_name,omitempty"`
}

// RequestAppointmentRequest is the payload for a student booking attempt.
// The teacher id comes from the availability index, never parsed out of a label.
type RequestAppointmentRequest struct {
	TeacherID     int    `json:"teacher_id" binding:"required"`
	RequestedTime string `json:"requested_time" binding:"required,min=1,max=100"`
}

// DecideRequest is the payload for a teacher's decision on a pending request.
type DecideRequest struct {
	Decision AppointmentStatus `json:"decision" binding:"required,oneof=approved declined"`
}
