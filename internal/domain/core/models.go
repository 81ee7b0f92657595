package core

import (
	"fmt"
	"time"
)

// EmployeeStatus is the closed employment state set.
type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "Active"
	StatusOnLeave    EmployeeStatus = "On Leave"
	StatusTerminated EmployeeStatus = "Terminated"
)

func ParseEmployeeStatus(value string) (EmployeeStatus, error) {
	switch EmployeeStatus(value) {
	case StatusActive:
		return StatusActive, nil
	case StatusOnLeave:
		return StatusOnLeave, nil
	case StatusTerminated:
		return StatusTerminated, nil
	default:
		return "", fmt.Errorf("unknown employee status %q", value)
	}
}

type Employee struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Name             string         `json:"name"`
	Phone            string         `json:"phone"`
	Department       string         `json:"department"`
	Position         string         `json:"position"`
	Status           EmployeeStatus `json:"status"`
	EmergencyContact string         `json:"emergencyContact"`
	ProfilePicture   string         `json:"profilePicture,omitempty"`
	JoinDate         *time.Time     `json:"joinDate,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// Profile is the role-independent self view returned by the profile
// endpoints. Password hashes never leave the store layer.
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Phone            string    `json:"phone"`
	Department       string    `json:"department,omitempty"`
	Position         string    `json:"position,omitempty"`
	Status           string    `json:"status,omitempty"`
	EmergencyContact string    `json:"emergencyContact,omitempty"`
	ProfilePicture   string    `json:"profilePicture,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
