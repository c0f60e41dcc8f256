package task

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/taskflow/internal/apperrors"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/tests/testutil"
)

func TestCreateDefaultsToPending(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:  "A",
		UserID: user.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Status != model.StatusPending {
		t.Errorf("expected status %q, got %q", model.StatusPending, created.Status)
	}
	if created.CompletedDate != nil {
		t.Errorf("expected nil completed date, got %v", created.CompletedDate)
	}
}

func TestCreateCompletedStampsCompletion(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:  "A",
		Status: model.StatusCompleted,
		UserID: user.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.CompletedDate == nil || !created.CompletedDate.Equal(now) {
		t.Errorf("expected completed date %v, got %v", now, created.CompletedDate)
	}
}

func TestCreateValidation(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)
	ctx := context.Background()

	badDate := "not-a-date"
	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing title", CreateRequest{UserID: user.ID}},
		{"missing user", CreateRequest{Title: "A"}},
		{"unknown status", CreateRequest{Title: "A", UserID: user.ID, Status: "done"}},
		{"unknown priority", CreateRequest{Title: "A", UserID: user.ID, Priority: "urgent"}},
		{"malformed due date", CreateRequest{Title: "A", UserID: user.ID, DueDate: &badDate}},
		{"negative estimated hours", CreateRequest{Title: "A", UserID: user.ID, EstimatedHours: -1}},
		{"negative actual hours", CreateRequest{Title: "A", UserID: user.ID, ActualHours: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !apperrors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Title:          "original",
		Description:    "desc",
		Priority:       model.PriorityHigh,
		Category:       "work",
		EstimatedHours: 4,
		Tags:           []string{"x", "y"},
		UserID:         user.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "renamed"
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "renamed" {
		t.Errorf("expected title renamed, got %q", updated.Title)
	}
	// Unspecified fields keep their stored values.
	if updated.Description != "desc" {
		t.Errorf("expected description kept, got %q", updated.Description)
	}
	if updated.Priority != model.PriorityHigh {
		t.Errorf("expected priority kept, got %q", updated.Priority)
	}
	if updated.Category != "work" {
		t.Errorf("expected category kept, got %q", updated.Category)
	}
	if updated.EstimatedHours != 4 {
		t.Errorf("expected estimated hours kept, got %v", updated.EstimatedHours)
	}
	if len(updated.Tags) != 2 || updated.Tags[0] != "x" || updated.Tags[1] != "y" {
		t.Errorf("expected tags kept, got %v", updated.Tags)
	}
}

func TestUpdateDueDateSemantics(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)
	ctx := context.Background()

	due := "2026-03-15"
	created, err := svc.Create(ctx, CreateRequest{Title: "A", UserID: user.ID, DueDate: &due})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.DueDate == nil {
		t.Fatal("expected due date set")
	}

	// An absent due_date keeps the stored value.
	desc := "touched"
	kept, err := svc.Update(ctx, created.ID, UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if kept.DueDate == nil {
		t.Fatal("expected due date kept when field absent")
	}

	// An explicitly empty due_date clears it.
	empty := ""
	cleared, err := svc.Update(ctx, created.ID, UpdateRequest{DueDate: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if cleared.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", cleared.DueDate)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Title: "A", UserID: user.ID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	completed := model.StatusCompleted
	first, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &completed})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if first.CompletedDate == nil {
		t.Fatal("expected completed date after completing")
	}

	// Completing again keeps the original timestamp.
	second, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &completed})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if second.CompletedDate == nil || !second.CompletedDate.Equal(*first.CompletedDate) {
		t.Errorf("re-completing changed the timestamp: %v -> %v",
			first.CompletedDate, second.CompletedDate)
	}

	// Reopening wipes it.
	pending := model.StatusPending
	reopened, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &pending})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if reopened.CompletedDate != nil {
		t.Errorf("expected completed date cleared after reopening, got %v", reopened.CompletedDate)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, s, "alice")
	svc := NewService(s)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Title: "A", UserID: user.ID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	bogus := "archived"
	if _, err := svc.Update(ctx, created.ID, UpdateRequest{Status: &bogus}); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := NewService(s)

	title := "A"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: &title})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := []string{
		"2026-03-10T12:00:00Z",
		"2026-03-10T12:00:00",
		"2026-03-10",
	}
	for _, value := range cases {
		if _, err := ParseDate(value); err != nil {
			t.Errorf("ParseDate(%q) error = %v", value, err)
		}
	}

	if _, err := ParseDate("10/03/2026"); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for unsupported layout, got %v", err)
	}
}
