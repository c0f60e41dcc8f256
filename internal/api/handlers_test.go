package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/report"
	"github.com/nhle/taskflow/internal/task"
	"github.com/nhle/taskflow/tests/testutil"
)

// newTestServer wires real services over an in-memory store.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	s := testutil.NewTestStore(t)
	return NewServer(
		auth.NewService(s, auth.NewPasswordHasher(4)),
		task.NewService(s),
		report.NewEngine(s),
	)
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decoding response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func registerUser(t *testing.T, server *Server) string {
	t.Helper()

	resp, body := doJSON(t, server, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "s3cret",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	return body["id"].(string)
}

func TestRegisterLoginFlow(t *testing.T) {
	server := newTestServer(t)
	registerUser(t, server)

	resp, body := doJSON(t, server, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["username"] != "alice" {
		t.Errorf("expected username alice, got %v", body["username"])
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Error("password hash leaked in response")
	}

	resp, _ = doJSON(t, server, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", resp.StatusCode)
	}
}

func TestTaskCRUDOverHTTP(t *testing.T) {
	server := newTestServer(t)
	userID := registerUser(t, server)

	resp, created := doJSON(t, server, http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":   "write report",
		"user_id": userID,
		"tags":    []string{"a", "b"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%v)", resp.StatusCode, created)
	}
	if created["status"] != "pending" {
		t.Errorf("expected status pending, got %v", created["status"])
	}
	if created["completed_date"] != nil {
		t.Errorf("expected null completed_date, got %v", created["completed_date"])
	}
	if created["username"] != "alice" {
		t.Errorf("expected username alice, got %v", created["username"])
	}
	taskID := created["id"].(string)

	resp, updated := doJSON(t, server, http.MethodPut, "/api/tasks/"+taskID, map[string]interface{}{
		"status": "completed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%v)", resp.StatusCode, updated)
	}
	if updated["status"] != "completed" {
		t.Errorf("expected status completed, got %v", updated["status"])
	}
	if updated["completed_date"] == nil {
		t.Error("expected completed_date set")
	}
	// Unspecified fields survive the partial update.
	if updated["title"] != "write report" {
		t.Errorf("expected title kept, got %v", updated["title"])
	}

	resp, listed := doJSON(t, server, http.MethodGet, "/api/tasks?user_id="+userID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	if tasks := listed["tasks"].([]interface{}); len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}

	resp, _ = doJSON(t, server, http.MethodDelete, "/api/tasks/"+taskID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, server, http.MethodDelete, "/api/tasks/"+taskID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestListTasksEmptyStoreReturnsArray(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, server, http.MethodGet, "/api/tasks", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}

	tasks, ok := body["tasks"].([]interface{})
	if !ok {
		t.Fatalf("expected tasks to be an array, got %T (%v)", body["tasks"], body["tasks"])
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty task array, got %d entries", len(tasks))
	}

	resp, body = doJSON(t, server, http.MethodGet, "/api/calendar/tasks?start=2026-03-01&end=2026-03-31", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("calendar: expected 200, got %d", resp.StatusCode)
	}
	if _, ok := body["tasks"].([]interface{}); !ok {
		t.Fatalf("expected calendar tasks to be an array, got %T", body["tasks"])
	}
}

func TestErrorMapping(t *testing.T) {
	server := newTestServer(t)

	// Missing title is a validation failure.
	resp, _ := doJSON(t, server, http.MethodPost, "/api/tasks", map[string]interface{}{
		"user_id": "someone",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing title, got %d", resp.StatusCode)
	}

	// Unknown task id maps to not found.
	resp, _ = doJSON(t, server, http.MethodPut, "/api/tasks/missing", map[string]interface{}{
		"title": "x",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown task, got %d", resp.StatusCode)
	}

	// Unknown report period is a validation failure.
	resp, _ = doJSON(t, server, http.MethodGet, "/api/reports/productivity?period=decade", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown period, got %d", resp.StatusCode)
	}
}

func TestReportsOverHTTP(t *testing.T) {
	server := newTestServer(t)
	userID := registerUser(t, server)

	for i := 0; i < 3; i++ {
		status := "pending"
		if i == 0 {
			status = "completed"
		}
		resp, body := doJSON(t, server, http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":    fmt.Sprintf("task %d", i),
			"user_id":  userID,
			"status":   status,
			"category": "work",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d (%v)", resp.StatusCode, body)
		}
	}

	resp, summary := doJSON(t, server, http.MethodGet, "/api/reports/summary", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", resp.StatusCode)
	}
	if summary["total_tasks"].(float64) != 3 {
		t.Errorf("expected 3 total tasks, got %v", summary["total_tasks"])
	}
	if summary["completed_tasks"].(float64) != 1 {
		t.Errorf("expected 1 completed task, got %v", summary["completed_tasks"])
	}

	resp, categories := doJSON(t, server, http.MethodGet, "/api/reports/by-category", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("by-category: expected 200, got %d", resp.StatusCode)
	}
	if groups := categories["categories"].([]interface{}); len(groups) != 1 {
		t.Errorf("expected 1 category group, got %d", len(groups))
	}

	resp, productivity := doJSON(t, server, http.MethodGet, "/api/reports/productivity?period=week", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("productivity: expected 200, got %d", resp.StatusCode)
	}
	if days := productivity["by_day"].([]interface{}); len(days) != 8 {
		t.Errorf("expected 8 day entries, got %d", len(days))
	}
}
