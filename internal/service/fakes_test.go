package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/repository"
	"github.com/google/uuid"
)

// In-memory stores mirroring the repository contracts, including the error
// values the services branch on.

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int]*model.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*model.User)}
}

func (s *fakeUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByName(_ context.Context, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeUserStore) ListActiveTeachers(_ context.Context) ([]model.TeacherOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TeacherOption, 0)
	for _, u := range s.users {
		if u.Role == model.RoleTeacher && u.Status == model.StatusActive {
			out = append(out, model.TeacherOption{ID: u.ID, Name: u.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Name == u.Name {
			return repository.ErrDuplicateName
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, id int, name string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.Name == name {
			return repository.ErrDuplicateName
		}
	}
	u.Name = name
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

func (s *fakeUserStore) SetStatus(_ context.Context, id int, status model.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeAppointmentStore struct {
	mu           sync.Mutex
	users        *fakeUserStore
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentStore(users *fakeUserStore) *fakeAppointmentStore {
	return &fakeAppointmentStore{
		users:        users,
		appointments: make(map[uuid.UUID]*model.Appointment),
	}
}

func (s *fakeAppointmentStore) Create(ctx context.Context, a *model.Appointment) error {
	teacher, err := s.users.GetByID(ctx, a.TeacherID)
	if err != nil || teacher.Role != model.RoleTeacher || teacher.Status != model.StatusActive {
		return repository.ErrTeacherNotBookable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.appointments {
		if existing.Status == model.AppointmentPending &&
			existing.StudentID == a.StudentID &&
			existing.TeacherID == a.TeacherID &&
			existing.RequestedTime == a.RequestedTime {
			return repository.ErrDuplicatePending
		}
	}
	a.CreatedAt = time.Now()
	copied := *a
	s.appointments[a.ID] = &copied
	return nil
}

func (s *fakeAppointmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *fakeAppointmentStore) Decide(_ context.Context, id uuid.UUID, teacherID int, decision model.AppointmentStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok || a.TeacherID != teacherID || a.Status != model.AppointmentPending {
		return 0, nil
	}
	now := time.Now()
	a.Status = decision
	a.DecidedAt = &now
	return 1, nil
}

func (s *fakeAppointmentStore) ListByStudent(_ context.Context, studentID int) ([]model.Appointment, error) {
	return s.list(func(a *model.Appointment) bool { return a.StudentID == studentID }), nil
}

func (s *fakeAppointmentStore) ListByTeacher(_ context.Context, teacherID int) ([]model.Appointment, error) {
	return s.list(func(a *model.Appointment) bool { return a.TeacherID == teacherID }), nil
}

func (s *fakeAppointmentStore) list(keep func(*model.Appointment) bool) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Appointment, 0)
	for _, a := range s.appointments {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *fakeAppointmentStore) CountByUser(_ context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.appointments {
		if a.StudentID == userID || a.TeacherID == userID {
			count++
		}
	}
	return count, nil
}

func (s *fakeAppointmentStore) CountAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments), nil
}

// recordingNotifier captures invalidation events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []InvalidationEvent
}

func (n *recordingNotifier) ViewInvalidated(_ context.Context, role model.Role, userID int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, InvalidationEvent{Role: role, UserID: userID})
}

func (n *recordingNotifier) has(role model.Role, userID int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e.Role == role && e.UserID == userID {
			return true
		}
	}
	return false
}
