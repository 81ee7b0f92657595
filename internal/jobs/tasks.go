package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"hrm/internal/domain/attendance"
)

const (
	QueueDefault = "default"

	// TaskAttendanceAutoClockOut closes every attendance entry still open
	// at the end of the workday.
	TaskAttendanceAutoClockOut = "attendance:auto_clock_out"
)

type AutoClockOutPayload struct {
	RequestedAt time.Time `json:"requestedAt"`
}

func NewAutoClockOutTask(requestedAt time.Time) (*asynq.Task, error) {
	data, err := json.Marshal(AutoClockOutPayload{RequestedAt: requestedAt})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAttendanceAutoClockOut, data), nil
}

// AutoClockOutHandler runs the batch through the attendance service.
func AutoClockOutHandler(svc *attendance.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AutoClockOutPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		now := time.Now()
		results, err := svc.AutoClockOut(ctx, now)
		if err != nil {
			return err
		}
		slog.Info("auto clock-out batch finished",
			"closed", len(results),
			"requestedAt", payload.RequestedAt,
		)
		return nil
	}
}
