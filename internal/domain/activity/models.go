package activity

import (
	"strings"
	"time"

	"hrm/internal/domain/auth"
)

// Entry is one audit record. Entries are append-only; nothing in the
// application updates or deletes them.
type Entry struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actorId"`
	ActorName string    `json:"actorName"`
	ActorRole auth.Role `json:"actorRole"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Detail    string    `json:"detail"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

// ModuleForPath maps a request path to the audit module it belongs to.
func ModuleForPath(path string) string {
	switch {
	case strings.Contains(path, "/auth"):
		return "auth"
	case strings.Contains(path, "/leave"):
		return "leave"
	case strings.Contains(path, "/payroll"):
		return "payroll"
	case strings.Contains(path, "/announcements"):
		return "announcements"
	case strings.Contains(path, "/attendance"):
		return "attendance"
	case strings.Contains(path, "/profile"), strings.Contains(path, "/status"), strings.Contains(path, "/team"):
		return "employees"
	case strings.Contains(path, "/activity-logs"):
		return "activity"
	default:
		return "general"
	}
}
