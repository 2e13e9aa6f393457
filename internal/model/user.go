package model

import "time"

// Role determines a user's operation authority and view scope.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Valid reports whether the role is one of the three recognized values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleStudent
}

// UserStatus marks a directory entry as bookable (teachers) or retired.
type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

// Valid reports whether the status is a recognized value.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User represents a directory entry.
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"-"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TeacherOption is one bookable entry of the availability index.
// Always a structured {id, name} pair — ids are never encoded into labels.
type TeacherOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LoginRequest is the payload for authentication. The claimed role must
// match the directory row exactly, alongside name and password.
type LoginRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=4,max=128"`
	Role     Role   `json:"role" binding:"required,oneof=Admin Teacher Student"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for creating a directory entry.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     Role   `json:"role" binding:"required,oneof=Admin Teacher Student"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// UpdateUserRequest is the payload for editing a directory entry.
// Role changes never rewrite existing appointments; they keep their id links.
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Role Role   `json:"role" binding:"required,oneof=Admin Teacher Student"`
}

// SetStatusRequest is the payload for activating or deactivating a user.
type SetStatusRequest struct {
	Status UserStatus `json:"status" binding:"required,oneof=Active Inactive"`
}
