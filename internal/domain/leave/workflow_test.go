package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionFromPending(t *testing.T) {
	require.NoError(t, CanTransition(StatusPending, StatusApproved))
	require.NoError(t, CanTransition(StatusPending, StatusRejected))
}

func TestCanTransitionTerminalStatesAreFinal(t *testing.T) {
	for _, current := range []Status{StatusApproved, StatusRejected} {
		for _, next := range []Status{StatusPending, StatusApproved, StatusRejected} {
			assert.ErrorIs(t, CanTransition(current, next), ErrAlreadyResolved, "from %s to %s", current, next)
		}
	}
}

func TestCanTransitionRejectsPendingAsTarget(t *testing.T) {
	assert.ErrorIs(t, CanTransition(StatusPending, StatusPending), ErrAlreadyResolved)
}

func TestParseDecision(t *testing.T) {
	decision, err := ParseDecision("Approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decision)

	decision, err = ParseDecision("Rejected")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, decision)

	_, err = ParseDecision("Pending")
	assert.Error(t, err)
	_, err = ParseDecision("approved")
	assert.Error(t, err)
}

func TestValidateRange(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ValidateRange(start, end))
	require.NoError(t, ValidateRange(start, start))
	assert.ErrorIs(t, ValidateRange(end, start), ErrInvalidRange)
}

func TestCanDelete(t *testing.T) {
	req := Request{EmployeeID: "emp-1", Status: StatusPending}
	require.NoError(t, CanDelete(req, "emp-1"))

	assert.ErrorIs(t, CanDelete(req, "emp-2"), ErrForbidden)

	req.Status = StatusApproved
	assert.ErrorIs(t, CanDelete(req, "emp-1"), ErrForbidden)

	req.Status = StatusRejected
	assert.ErrorIs(t, CanDelete(req, "emp-1"), ErrForbidden)
}
