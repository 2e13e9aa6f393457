package repository

import (
	"context"
	"errors"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTeacherNotBookable means the targeted teacher was not an active teacher
// at insert time. The availability check runs inside the INSERT itself, so a
// stale client-side teacher list can never produce a booking.
var ErrTeacherNotBookable = errors.New("teacher is not currently bookable")

// AppointmentRepository owns the appointments table.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create inserts a pending appointment, re-validating teacher availability in
// the same statement. Zero rows inserted means the teacher was inactive,
// missing, or not a teacher at call time.
func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, student_id, teacher_id, requested_time, status)
		 SELECT $1, $2, $3, $4, $5
		 WHERE EXISTS (
		     SELECT 1 FROM users
		     WHERE id = $3 AND role = $6 AND status = $7
		 )
		 RETURNING created_at`,
		a.ID, a.StudentID, a.TeacherID, a.RequestedTime, model.AppointmentPending,
		model.RoleTeacher, model.StatusActive,
	).Scan(&a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTeacherNotBookable
		}
		if isUniqueViolation(err) {
			return ErrDuplicatePending
		}
		return classify("create appointment", err)
	}
	a.Status = model.AppointmentPending
	return nil
}

// GetByID retrieves an appointment by ID.
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, teacher_id, requested_time, status, created_at, decided_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.StudentID, &a.TeacherID, &a.RequestedTime, &a.Status, &a.CreatedAt, &a.DecidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("get appointment by id", err)
	}
	return a, nil
}

// Decide flips a pending appointment to a terminal status in a single
// compare-and-set UPDATE. The guard enforces both ownership and the
// pending-only transition; it returns the number of rows changed so the
// caller can tell a successful transition (1) from a refused one (0).
func (r *AppointmentRepository) Decide(ctx context.Context, id uuid.UUID, teacherID int, decision model.AppointmentStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments
		 SET status = $1, decided_at = NOW()
		 WHERE id = $2 AND teacher_id = $3 AND status = $4`,
		decision, id, teacherID, model.AppointmentPending)
	if err != nil {
		return 0, classify("decide appointment", err)
	}
	return tag.RowsAffected(), nil
}

// ListByStudent retrieves a student's appointments with teacher names joined.
func (r *AppointmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.student_id, a.teacher_id, a.requested_time, a.status,
		        a.created_at, a.decided_at, t.name AS teacher_name
		 FROM appointments a
		 JOIN users t ON a.teacher_id = t.id
		 WHERE a.student_id = $1
		 ORDER BY a.created_at DESC`, studentID)
	if err != nil {
		return nil, classify("list appointments by student", err)
	}
	defer rows.Close()
	return scanAppointments(rows, true)
}

// ListByTeacher retrieves appointments addressed to a teacher with student
// names joined.
func (r *AppointmentRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.student_id, a.teacher_id, a.requested_time, a.status,
		        a.created_at, a.decided_at, s.name AS student_name
		 FROM appointments a
		 JOIN users s ON a.student_id = s.id
		 WHERE a.teacher_id = $1
		 ORDER BY a.created_at DESC`, teacherID)
	if err != nil {
		return nil, classify("list appointments by teacher", err)
	}
	defer rows.Close()
	return scanAppointments(rows, false)
}

// CountByUser counts appointments referencing a user as student or teacher.
// Used to block directory deletes while references exist.
func (r *AppointmentRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE student_id = $1 OR teacher_id = $1`,
		userID).Scan(&n)
	if err != nil {
		return 0, classify("count appointments by user", err)
	}
	return n, nil
}

// CountAll counts every appointment row. Feeds the admin projection.
func (r *AppointmentRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&n); err != nil {
		return 0, classify("count appointments", err)
	}
	return n, nil
}

func scanAppointments(rows pgx.Rows, teacherName bool) ([]model.Appointment, error) {
	var appointments []model.Appointment
	for rows.Next() {
		var a model.Appointment
		var name string
		err := rows.Scan(&a.ID, &a.StudentID, &a.TeacherID, &a.RequestedTime,
			&a.Status, &a.CreatedAt, &a.DecidedAt, &name)
		if err != nil {
			return nil, classify("scan appointment", err)
		}
		if teacherName {
			a.TeacherName = name
		} else {
			a.StudentName = name
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}
