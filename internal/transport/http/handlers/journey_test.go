package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hrm/internal/app/server"
	"hrm/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedHREmail:        "hr@test.local",
		SeedHRPassword:     "ChangeMe123!",
		SeedHRName:         "Test HR",
		RunMigrations:      true,
		MigrationsDir:      "../../../../migrations",
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		LoginRatePerMinute: 1000,
		ActivityBuffer:     64,
	}
}

func startApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, envelope) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d", email, status)
	}
	var data struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("login decode: %v", err)
	}
	if data.Token == "" {
		t.Fatal("login returned empty token")
	}
	return data.Token
}

func registerAccount(t *testing.T, client *http.Client, baseURL, role string, payload map[string]any) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/register/"+role, "", payload)
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d error %+v", role, status, env.Error)
	}
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("register decode: %v", err)
	}
	return data.ID
}

func TestLeaveApprovalJourney(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	suffix := time.Now().UnixNano()
	managerEmail := fmt.Sprintf("manager-%d@test.local", suffix)
	employeeEmail := fmt.Sprintf("employee-%d@test.local", suffix)
	outsiderEmail := fmt.Sprintf("outsider-%d@test.local", suffix)

	registerAccount(t, client, ts.URL, "manager", map[string]any{
		"email": managerEmail, "password": "Password123", "name": "Journey Manager", "department": "Engineering",
	})
	employeeID := registerAccount(t, client, ts.URL, "employee", map[string]any{
		"email": employeeEmail, "password": "Password123", "name": "Journey Employee",
		"department": "Engineering", "position": "Developer",
	})
	registerAccount(t, client, ts.URL, "employee", map[string]any{
		"email": outsiderEmail, "password": "Password123", "name": "Journey Outsider",
		"department": "Sales", "position": "Rep",
	})

	managerToken := login(t, client, ts.URL, managerEmail, "Password123")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Password123")
	outsiderToken := login(t, client, ts.URL, outsiderEmail, "Password123")

	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/manager/team", managerToken, map[string]string{
		"employeeId": employeeID,
	})
	if status != http.StatusCreated {
		t.Fatalf("add team member: status %d", status)
	}

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/leave", employeeToken, map[string]string{
		"category":  "Vacation",
		"startDate": "2026-09-07",
		"endDate":   "2026-09-11",
		"reason":    "family trip",
	})
	if status != http.StatusCreated {
		t.Fatalf("create leave: status %d error %+v", status, env.Error)
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode leave: %v", err)
	}
	if created.Status != "Pending" {
		t.Fatalf("expected Pending, got %s", created.Status)
	}

	// A pending request reads back cleanly before anyone has decided on it.
	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/leave/"+created.ID, employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("get pending leave: status %d error %+v", status, env.Error)
	}
	var pending struct {
		Status     string `json:"status"`
		ApprovedBy string `json:"approvedBy"`
	}
	if err := json.Unmarshal(env.Data, &pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if pending.Status != "Pending" || pending.ApprovedBy != "" {
		t.Fatalf("unexpected pending read: %+v", pending)
	}
	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/leave", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list own leave: status %d error %+v", status, env.Error)
	}

	// Outsider leave requests are invisible to this manager's decisions.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/leave", outsiderToken, map[string]string{
		"category": "Sick", "startDate": "2026-09-07", "endDate": "2026-09-08", "reason": "flu",
	})
	if status != http.StatusCreated {
		t.Fatalf("outsider create leave: status %d", status)
	}

	status, env = doJSON(t, client, http.MethodPut, ts.URL+"/api/leave/"+created.ID, managerToken, map[string]string{
		"status": "Approved",
	})
	if status != http.StatusOK {
		t.Fatalf("approve leave: status %d error %+v", status, env.Error)
	}
	var approved struct {
		Status       string `json:"status"`
		ApproverRole string `json:"approverRole"`
	}
	if err := json.Unmarshal(env.Data, &approved); err != nil {
		t.Fatalf("decode approved: %v", err)
	}
	if approved.Status != "Approved" || approved.ApproverRole != "manager" {
		t.Fatalf("unexpected approval: %+v", approved)
	}

	// A second decision finds no pending request.
	status, _ = doJSON(t, client, http.MethodPut, ts.URL+"/api/leave/"+created.ID, managerToken, map[string]string{
		"status": "Rejected",
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 on double decision, got %d", status)
	}

	// Approved requests can no longer be deleted by their owner.
	status, _ = doJSON(t, client, http.MethodDelete, ts.URL+"/api/leave/"+created.ID, employeeToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 deleting approved leave, got %d", status)
	}
}

func TestManagerBlockedOutsideTeam(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	suffix := time.Now().UnixNano()
	managerEmail := fmt.Sprintf("mgr-guard-%d@test.local", suffix)
	employeeEmail := fmt.Sprintf("emp-guard-%d@test.local", suffix)

	registerAccount(t, client, ts.URL, "manager", map[string]any{
		"email": managerEmail, "password": "Password123", "name": "Guard Manager", "department": "Ops",
	})
	registerAccount(t, client, ts.URL, "employee", map[string]any{
		"email": employeeEmail, "password": "Password123", "name": "Guard Employee",
		"department": "Ops", "position": "Analyst",
	})

	managerToken := login(t, client, ts.URL, managerEmail, "Password123")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Password123")

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/leave", employeeToken, map[string]string{
		"category": "Vacation", "startDate": "2026-10-01", "endDate": "2026-10-02", "reason": "trip",
	})
	if status != http.StatusCreated {
		t.Fatalf("create leave: status %d", status)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The employee was never added to this manager's team.
	status, _ = doJSON(t, client, http.MethodPut, ts.URL+"/api/leave/"+created.ID, managerToken, map[string]string{
		"status": "Approved",
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 outside team, got %d", status)
	}
}

func TestPayrollLifecycle(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	hrToken := login(t, client, ts.URL, "hr@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("pay-%d@test.local", suffix)
	employeeID := registerAccount(t, client, ts.URL, "employee", map[string]any{
		"email": employeeEmail, "password": "Password123", "name": "Payroll Employee",
		"department": "Finance", "position": "Clerk",
	})
	employeeToken := login(t, client, ts.URL, employeeEmail, "Password123")

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/payroll", hrToken, map[string]any{
		"employeeId": employeeID,
		"baseSalary": 5000.0,
		"bonus":      500.0,
		"deduction":  200.0,
		"month":      "2026-08",
	})
	if status != http.StatusCreated {
		t.Fatalf("create payroll: status %d error %+v", status, env.Error)
	}
	var rec struct {
		ID        string  `json:"id"`
		NetSalary float64 `json:"netSalary"`
		Status    string  `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		t.Fatalf("decode payroll: %v", err)
	}
	if rec.NetSalary != 5300 {
		t.Fatalf("expected net 5300, got %v", rec.NetSalary)
	}
	if rec.Status != "Pending" {
		t.Fatalf("expected Pending, got %s", rec.Status)
	}

	status, env = doJSON(t, client, http.MethodPatch, ts.URL+"/api/payroll/"+rec.ID, hrToken, map[string]any{
		"bonus":  800.0,
		"status": "Paid",
	})
	if status != http.StatusOK {
		t.Fatalf("patch payroll: status %d error %+v", status, env.Error)
	}
	var patched struct {
		NetSalary float64 `json:"netSalary"`
		Status    string  `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &patched); err != nil {
		t.Fatalf("decode patched: %v", err)
	}
	if patched.NetSalary != 5600 {
		t.Fatalf("expected net recomputed to 5600, got %v", patched.NetSalary)
	}
	if patched.Status != "Paid" {
		t.Fatalf("expected Paid, got %s", patched.Status)
	}

	// Employees see only their own records and can fetch their payslip.
	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/payroll", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list payroll: status %d", status)
	}
	var list []struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	for _, item := range list {
		if item.EmployeeID != employeeID {
			t.Fatalf("employee list leaked record for %s", item.EmployeeID)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/payroll/"+rec.ID+"/payslip", nil)
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("payslip: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payslip status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf, got %s", ct)
	}
	pdf, _ := io.ReadAll(resp.Body)
	if len(pdf) == 0 || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("payslip is not a PDF document")
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	email := fmt.Sprintf("dup-%d@test.local", time.Now().UnixNano())
	payload := map[string]any{
		"email": email, "password": "Password123", "name": "Dup One",
		"department": "IT", "position": "Tester",
	}
	registerAccount(t, client, ts.URL, "employee", payload)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/register/employee", "", payload)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate email, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "email_taken" {
		t.Fatalf("expected email_taken, got %+v", env.Error)
	}
}

func TestLoginDoesNotRevealWhichFieldFailed(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	unknownStatus, unknownEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email": "nobody@test.local", "password": "whatever123",
	})
	wrongStatus, wrongEnv := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email": "hr@test.local", "password": "wrong-password",
	})

	if unknownStatus != http.StatusUnauthorized || wrongStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknownStatus, wrongStatus)
	}
	if unknownEnv.Error == nil || wrongEnv.Error == nil || unknownEnv.Error.Message != wrongEnv.Error.Message {
		t.Fatal("expected identical error messages for unknown email and wrong password")
	}
}
