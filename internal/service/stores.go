package service

import (
	"context"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/google/uuid"
)

// UserStore is the directory access the services need.
// *repository.UserRepository is the production implementation.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListActiveTeachers(ctx context.Context) ([]model.TeacherOption, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id int, name string, role model.Role) error
	SetStatus(ctx context.Context, id int, status model.UserStatus) error
	Delete(ctx context.Context, id int) error
}

// AppointmentStore is the ledger access the services need.
// *repository.AppointmentRepository is the production implementation.
type AppointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Decide(ctx context.Context, id uuid.UUID, teacherID int, decision model.AppointmentStatus) (int64, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Appointment, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.Appointment, error)
	CountByUser(ctx context.Context, userID int) (int, error)
	CountAll(ctx context.Context) (int, error)
}
