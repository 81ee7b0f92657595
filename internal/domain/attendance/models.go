package attendance

import "time"

type Entry struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	WorkDate     time.Time  `json:"workDate"`
	ClockIn      time.Time  `json:"clockIn"`
	ClockOut     *time.Time `json:"clockOut,omitempty"`
	HoursWorked  float64    `json:"hoursWorked"`
	AutoClockOut bool       `json:"autoClockOut"`
}

// AutoClockOutResult describes one employee closed by the batch job.
type AutoClockOutResult struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	ClockOut     time.Time `json:"clockOut"`
	HoursWorked  float64   `json:"hoursWorked"`
}
