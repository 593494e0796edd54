package models

import (
	"time"

	"github.com/google/uuid"
)

// PivotLocale is the language every listing is eventually translated into.
const PivotLocale = "bg"

const MaxTaskImages = 5

// Task statuses form a linear lifecycle; transitions themselves live in the
// application/professional workflows, this layer only reads them and writes
// "cancelled" for delete-as-cancel.
const (
	TaskStatusDraft               = "draft"
	TaskStatusOpen                = "open"
	TaskStatusInProgress          = "in_progress"
	TaskStatusPendingConfirmation = "pending_customer_confirmation"
	TaskStatusCompleted           = "completed"
	TaskStatusCancelled           = "cancelled"
	TaskStatusDisputed            = "disputed"
)

var TaskStatuses = []string{
	TaskStatusDraft,
	TaskStatusOpen,
	TaskStatusInProgress,
	TaskStatusPendingConfirmation,
	TaskStatusCompleted,
	TaskStatusCancelled,
	TaskStatusDisputed,
}

// IsValidTaskStatus reports whether s is one of the fixed status values.
func IsValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

const (
	BudgetTypeFixed      = "fixed"
	BudgetTypeHourly     = "hourly"
	BudgetTypeNegotiable = "negotiable"
	BudgetTypeUnclear    = "unclear"
)

type TaskImage struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type Task struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`

	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Requirements  *string `json:"requirements,omitempty"`
	LocationNotes *string `json:"location_notes,omitempty"`

	// Machine-translated counterparts in the pivot language, populated
	// asynchronously by the translation worker.
	TitleBG        *string `json:"title_bg,omitempty"`
	DescriptionBG  *string `json:"description_bg,omitempty"`
	RequirementsBG *string `json:"requirements_bg,omitempty"`

	City         string  `json:"city"`
	Neighborhood *string `json:"neighborhood,omitempty"`

	BudgetMin  *float64 `json:"budget_min,omitempty"`
	BudgetMax  *float64 `json:"budget_max,omitempty"`
	BudgetType string   `json:"budget_type"`

	Deadline *time.Time `json:"deadline,omitempty"`
	IsUrgent bool       `json:"is_urgent"`

	Status                 string  `json:"status"`
	CustomerID             string  `json:"customer_id"`
	SelectedProfessionalID *string `json:"selected_professional_id,omitempty"`

	SourceLocale string      `json:"source_locale"`
	Images       []TaskImage `json:"images"`

	// Derived, recomputed per query: applications still pending a decision.
	PendingApplications int `json:"pending_applications"`

	Customer *CustomerSummary `json:"customer,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// TaskRef is the tagged id-or-slug variant resolved at the boundary so the
// repository never has to guess what kind of identifier it received.
type TaskRef struct {
	ID   string
	Slug string
}

func TaskByID(id string) TaskRef     { return TaskRef{ID: id} }
func TaskBySlug(slug string) TaskRef { return TaskRef{Slug: slug} }

// ParseTaskRef classifies an opaque path segment: a canonical UUID is an id,
// anything else is treated as a slug.
func ParseTaskRef(idOrSlug string) TaskRef {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return TaskByID(idOrSlug)
	}
	return TaskBySlug(idOrSlug)
}

func (r TaskRef) IsZero() bool { return r.ID == "" && r.Slug == "" }

// TaskSearchResult is a task row returned by the ranked database-side search
// function.
type TaskSearchResult struct {
	Task
	Rank float64 `json:"rank"`
}

// CreateTaskInput is the validated write payload for task creation.
type CreateTaskInput struct {
	Title         string      `json:"title" validate:"required,min=5,max=150"`
	Description   string      `json:"description" validate:"required,min=20"`
	Requirements  *string     `json:"requirements,omitempty" validate:"omitempty,max=2000"`
	LocationNotes *string     `json:"location_notes,omitempty" validate:"omitempty,max=500"`
	Category      string      `json:"category" validate:"required"`
	Subcategory   string      `json:"subcategory,omitempty"`
	City          string      `json:"city" validate:"required"`
	Neighborhood  *string     `json:"neighborhood,omitempty"`
	BudgetMin     *float64    `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax     *float64    `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	BudgetType    string      `json:"budget_type" validate:"required,oneof=fixed hourly negotiable unclear"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
	SourceLocale  string      `json:"source_locale" validate:"required,len=2"`
	Images        []TaskImage `json:"images,omitempty"`
}

// UpdateTaskInput carries a partial update; nil fields keep stored values.
type UpdateTaskInput struct {
	Title         *string     `json:"title,omitempty" validate:"omitempty,min=5,max=150"`
	Description   *string     `json:"description,omitempty" validate:"omitempty,min=20"`
	Requirements  *string     `json:"requirements,omitempty" validate:"omitempty,max=2000"`
	LocationNotes *string     `json:"location_notes,omitempty" validate:"omitempty,max=500"`
	Category      *string     `json:"category,omitempty"`
	Subcategory   *string     `json:"subcategory,omitempty"`
	Neighborhood  *string     `json:"neighborhood,omitempty"`
	BudgetMin     *float64    `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax     *float64    `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	BudgetType    *string     `json:"budget_type,omitempty" validate:"omitempty,oneof=fixed hourly negotiable unclear"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
	Images        []TaskImage `json:"images,omitempty"`
}

// TaskDetail is the single-task response shape.
type TaskDetail struct {
	Task        Task            `json:"task"`
	RelatedData TaskRelatedData `json:"relatedData"`
}

type TaskRelatedData struct {
	ApplicationsCount int  `json:"applicationsCount"`
	IsOwner           bool `json:"isOwner"`
}
