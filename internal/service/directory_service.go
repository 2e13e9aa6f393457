package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/repository"
	"github.com/rs/zerolog"
)

// DirectoryService handles directory entry CRUD and authentication.
// The directory store is the single source of truth for users.
type DirectoryService struct {
	users        UserStore
	appointments AppointmentStore
	auth         *AuthService
	notifier     ViewNotifier
	log          zerolog.Logger
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(users UserStore, appointments AppointmentStore, auth *AuthService, notifier ViewNotifier, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		users:        users,
		appointments: appointments,
		auth:         auth,
		notifier:     notifier,
		log:          log.With().Str("component", "directory_service").Logger(),
	}
}

// CreateUser adds a directory entry, defaulting status to Active.
func (s *DirectoryService) CreateUser(ctx context.Context, name string, role model.Role, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unrecognized role %q", ErrValidation, role)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		Status:       model.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.log.Info().Int("user_id", user.ID).Str("role", string(role)).Msg("User created")
	s.invalidateDirectoryViews(ctx, role)
	return user, nil
}

// UpdateUser edits a directory entry's name and role. Existing appointments
// keep referencing the id regardless of the new role.
func (s *DirectoryService) UpdateUser(ctx context.Context, id int, name string, role model.Role) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unrecognized role %q", ErrValidation, role)
	}

	if err := s.users.Update(ctx, id, name, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.invalidateDirectoryViews(ctx, role)
	return s.users.GetByID(ctx, id)
}

// DeleteUser removes a directory entry. Deletes are blocked while any
// appointment references the user; the conflict carries the reference count.
func (s *DirectoryService) DeleteUser(ctx context.Context, id int) error {
	refs, err := s.appointments.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &ConflictError{References: refs}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.log.Info().Int("user_id", id).Msg("User deleted")
	s.invalidateDirectoryViews(ctx, model.RoleTeacher)
	return nil
}

// SetStatus activates or deactivates a user. Idempotent.
func (s *DirectoryService) SetStatus(ctx context.Context, id int, status model.UserStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unrecognized status %q", ErrValidation, status)
	}

	if err := s.users.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.log.Info().Int("user_id", id).Str("status", string(status)).Msg("User status set")
	// Availability may have changed; every student booking form is stale.
	s.invalidateDirectoryViews(ctx, model.RoleTeacher)
	return nil
}

// GetUser retrieves a single directory entry by id.
func (s *DirectoryService) GetUser(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves the full directory.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Authenticate verifies the exact (name, password, role) triple. Any
// mismatch yields the same ErrInvalidCredentials so callers cannot probe
// which field failed.
func (s *DirectoryService) Authenticate(ctx context.Context, name, password string, role model.Role) (*model.User, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Role != role {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// invalidateDirectoryViews marks every admin view stale, and every student
// view when the mutation could have touched the availability index.
func (s *DirectoryService) invalidateDirectoryViews(ctx context.Context, role model.Role) {
	s.notifier.ViewInvalidated(ctx, model.RoleAdmin, BroadcastUserID)
	if role == model.RoleTeacher {
		s.notifier.ViewInvalidated(ctx, model.RoleStudent, BroadcastUserID)
	}
}
