package services

import "maistorBack/internal/models"

// PrivacyFilter is the single enforcement point for viewer-dependent field
// redaction. The current data model keeps every task field public, so Apply
// passes records through unchanged — but both the list path and the detail
// path already route through it, so any future confidential field only needs
// masking here. Apply is idempotent: filtering a filtered record is a no-op.
type PrivacyFilter struct{}

// IsOwner reports whether the viewer is the task's owning customer.
func (PrivacyFilter) IsOwner(t models.Task, viewerID string) bool {
	return viewerID != "" && viewerID == t.CustomerID
}

// Apply returns the record as visible to the given viewer.
func (f PrivacyFilter) Apply(t models.Task, viewerID string) models.Task {
	return t
}

// ApplyAll filters a page of records in place for the given viewer.
func (f PrivacyFilter) ApplyAll(tasks []models.Task, viewerID string) []models.Task {
	for i := range tasks {
		tasks[i] = f.Apply(tasks[i], viewerID)
	}
	return tasks
}
