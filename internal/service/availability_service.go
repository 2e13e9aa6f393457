package service

import (
	"context"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
)

// AvailabilityService derives the set of bookable teachers from the
// directory. The index is recomputed from the store on every call — teacher
// status can change between a student opening the booking form and
// submitting it, so nothing here is cached.
type AvailabilityService struct {
	users UserStore
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(users UserStore) *AvailabilityService {
	return &AvailabilityService{users: users}
}

// ListBookableTeachers returns active teachers ordered by name, ties broken
// by id, for deterministic display.
func (s *AvailabilityService) ListBookableTeachers(ctx context.Context) ([]model.TeacherOption, error) {
	teachers, err := s.users.ListActiveTeachers(ctx)
	if err != nil {
		return nil, err
	}
	if teachers == nil {
		teachers = []model.TeacherOption{}
	}
	return teachers, nil
}
