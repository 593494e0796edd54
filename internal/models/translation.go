package models

// TaskTranslation carries best-effort pivot-language strings returned by the
// translation collaborator. Any subset may be absent.
type TaskTranslation struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
}

// Empty reports whether the collaborator returned nothing usable.
func (t TaskTranslation) Empty() bool {
	return t.Title == nil && t.Description == nil && t.Requirements == nil
}
