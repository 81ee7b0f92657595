package announcements

import (
	"fmt"
	"time"
)

// Urgency is the closed announcement priority set.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func ParseUrgency(value string) (Urgency, error) {
	switch Urgency(value) {
	case UrgencyLow:
		return UrgencyLow, nil
	case UrgencyMedium:
		return UrgencyMedium, nil
	case UrgencyHigh:
		return UrgencyHigh, nil
	default:
		return "", fmt.Errorf("unknown urgency %q", value)
	}
}

// Announcement is immutable after creation; there are no update or delete
// operations.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Urgency   Urgency   `json:"urgency"`
	CreatedAt time.Time `json:"createdAt"`
}
