package payroll

import (
	"fmt"
	"time"
)

// Status tracks a payroll record through its payment cycle.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusPaid       Status = "Paid"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending:
		return StatusPending, nil
	case StatusProcessing:
		return StatusProcessing, nil
	case StatusPaid:
		return StatusPaid, nil
	default:
		return "", fmt.Errorf("unknown payroll status %q", value)
	}
}

type Record struct {
	ID                   string    `json:"id"`
	EmployeeID           string    `json:"employeeId"`
	EmployeeName         string    `json:"employeeName,omitempty"`
	Department           string    `json:"department,omitempty"`
	BaseSalary           float64   `json:"baseSalary"`
	Bonus                float64   `json:"bonus"`
	BonusDescription     string    `json:"bonusDescription"`
	Deduction            float64   `json:"deduction"`
	DeductionDescription string    `json:"deductionDescription"`
	// NetSalary is derived from the amount fields and recomputed on every
	// write; it is never directly settable.
	NetSalary float64   `json:"netSalary"`
	Status    Status    `json:"status"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"createdAt"`
}
