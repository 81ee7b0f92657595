package leave

import (
	"fmt"
	"time"
)

// Status is the leave request lifecycle. Pending is the only initial state;
// Approved and Rejected are terminal.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ParseDecision accepts only the two terminal states an approver may move a
// request into.
func ParseDecision(value string) (Status, error) {
	switch Status(value) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("invalid decision %q", value)
	}
}

type Request struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Category     string     `json:"category"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	ApprovedBy   string     `json:"approvedBy,omitempty"`
	ApproverRole string     `json:"approverRole,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ApprovedAt   *time.Time `json:"approvalDate,omitempty"`
}
