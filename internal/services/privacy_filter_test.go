package services

import (
	"reflect"
	"testing"

	"maistorBack/internal/models"
)

func TestPrivacyFilterIsOwner(t *testing.T) {
	task := models.Task{ID: "t1", CustomerID: "cust-1"}
	var f PrivacyFilter

	tests := []struct {
		name     string
		viewerID string
		want     bool
	}{
		{"owner", "cust-1", true},
		{"other user", "cust-2", false},
		{"anonymous", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsOwner(task, tt.viewerID); got != tt.want {
				t.Errorf("IsOwner(%q) = %v, want %v", tt.viewerID, got, tt.want)
			}
		})
	}
}

func TestPrivacyFilterAnonymousOwnerTaskNeverOwner(t *testing.T) {
	// A task with an empty customer id must not look owned by an anonymous
	// viewer just because both ids are empty.
	var f PrivacyFilter
	if f.IsOwner(models.Task{ID: "t1"}, "") {
		t.Error("anonymous viewer reported as owner of ownerless task")
	}
}

func TestPrivacyFilterApplyIdempotent(t *testing.T) {
	var f PrivacyFilter
	task := models.Task{ID: "t1", CustomerID: "cust-1", Title: "Fix leaking sink"}

	once := f.Apply(task, "cust-2")
	twice := f.Apply(once, "cust-2")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Apply is not idempotent: %+v != %+v", once, twice)
	}
}

func TestPrivacyFilterApplyAll(t *testing.T) {
	var f PrivacyFilter
	tasks := []models.Task{
		{ID: "t1", CustomerID: "cust-1"},
		{ID: "t2", CustomerID: "cust-2"},
	}

	got := f.ApplyAll(tasks, "cust-1")
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("task order changed: %+v", got)
	}
}
