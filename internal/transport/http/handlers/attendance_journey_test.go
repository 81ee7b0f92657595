package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestAttendanceAutoClockOut(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	hrToken := login(t, client, ts.URL, "hr@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("att-%d@test.local", suffix)
	employeeID := registerAccount(t, client, ts.URL, "employee", map[string]any{
		"email": employeeEmail, "password": "Password123", "name": "Attendance Employee",
		"department": "Support", "position": "Agent",
	})
	employeeToken := login(t, client, ts.URL, employeeEmail, "Password123")

	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/employee/attendance/clock-in", employeeToken, nil)
	if status != http.StatusCreated {
		t.Fatalf("clock in: status %d", status)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/employee/attendance/clock-in", employeeToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 on second clock-in, got %d", status)
	}

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/employee/attendance/auto-clock-out", hrToken, nil)
	if status != http.StatusOK {
		t.Fatalf("auto clock-out: status %d error %+v", status, env.Error)
	}
	var batch struct {
		Closed  int `json:"closed"`
		Entries []struct {
			EmployeeID string `json:"employeeId"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	found := false
	for _, entry := range batch.Entries {
		if entry.EmployeeID == employeeID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected batch to close employee %s, closed %d", employeeID, batch.Closed)
	}

	// Already closed; the employee cannot clock out a second time.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/employee/attendance/clock-out", employeeToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 clocking out a closed day, got %d", status)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/employee/attendance", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("history: status %d", status)
	}
	var history []struct {
		AutoClockOut bool `json:"autoClockOut"`
	}
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) == 0 || !history[0].AutoClockOut {
		t.Fatalf("expected latest entry flagged as auto clock-out: %+v", history)
	}
}

func TestAutoClockOutRequiresHROrKey(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("att-guard-%d@test.local", suffix)
	registerAccount(t, client, ts.URL, "employee", map[string]any{
		"email": employeeEmail, "password": "Password123", "name": "Attendance Guard",
		"department": "Support", "position": "Agent",
	})
	employeeToken := login(t, client, ts.URL, employeeEmail, "Password123")

	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/employee/attendance/auto-clock-out", employeeToken, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for employee trigger, got %d", status)
	}
}

func TestActivityLogCapturesMutations(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	hrToken := login(t, client, ts.URL, "hr@test.local", "ChangeMe123!")

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/announcements", hrToken, map[string]string{
		"title": "Office closed", "body": "Closed Friday for maintenance.", "category": "facilities", "urgency": "high",
	})
	if status != http.StatusCreated {
		t.Fatalf("create announcement: status %d error %+v", status, env.Error)
	}

	// The recorder writes off the request path; poll briefly.
	deadline := time.Now().Add(3 * time.Second)
	for {
		status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/hr/activity-logs?module=announcements", hrToken, nil)
		if status != http.StatusOK {
			t.Fatalf("list activity: status %d", status)
		}
		var entries []struct {
			Module    string `json:"module"`
			ActorRole string `json:"actorRole"`
		}
		if err := json.Unmarshal(env.Data, &entries); err != nil {
			t.Fatalf("decode activity: %v", err)
		}
		if len(entries) > 0 {
			if entries[0].Module != "announcements" || entries[0].ActorRole != "hr" {
				t.Fatalf("unexpected entry: %+v", entries[0])
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("activity entry never appeared")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
