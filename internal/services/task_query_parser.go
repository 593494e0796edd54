package services

import (
	"strconv"
	"strings"

	"maistorBack/internal/models"
)

// ParseTaskQuery converts the raw, stringly-typed parameter bag into the
// validated descriptor the repository consumes. It is deterministic and has
// no side effects; every failure is a *models.ValidationError.
func ParseTaskQuery(params models.TaskQueryParams) (models.TaskQuery, error) {
	q := models.TaskQuery{
		CustomerID:   params.CustomerID,
		Category:     strings.TrimSpace(params.Category),
		Subcategory:  strings.TrimSpace(params.Subcategory),
		City:         strings.TrimSpace(params.City),
		Neighborhood: strings.TrimSpace(params.Neighborhood),
	}

	// Non-numeric page/limit fall back to the default before clamping, so
	// garbage input never bypasses the bounds.
	q.Page = parseIntDefault(params.Page, 1)
	if q.Page < 1 {
		q.Page = 1
	}
	q.Limit = parseIntDefault(params.Limit, models.DefaultPageLimit)
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > models.MaxPageLimit {
		q.Limit = models.MaxPageLimit
	}
	q.Offset = (q.Page - 1) * q.Limit

	q.Statuses = parseStatusList(params.Status)

	if v := strings.TrimSpace(params.IsUrgent); v != "" {
		switch v {
		case "true", "1":
			urgent := true
			q.IsUrgent = &urgent
		case "false", "0":
			urgent := false
			q.IsUrgent = &urgent
		}
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(params.BudgetMin), 64); err == nil {
		q.BudgetMin = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(params.BudgetMax), 64); err == nil {
		q.BudgetMax = &v
	}
	if q.BudgetMin != nil && q.BudgetMax != nil && *q.BudgetMin > *q.BudgetMax {
		return models.TaskQuery{}, models.NewValidationError("budget", "budgetMin must not exceed budgetMax")
	}

	applySort(&q, params.SortBy)

	// Mode presets run after user-supplied filters were assembled: presets win.
	switch params.Mode {
	case models.ModeBrowse:
		q.Mode = models.ModeBrowse
		q.Statuses = []string{models.TaskStatusOpen}
	case models.ModePosted:
		q.Mode = models.ModePosted
	case models.ModeApplications:
		q.Mode = models.ModeApplications
	}

	return q, nil
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// parseStatusList accepts a single value or a comma-separated list and drops
// anything outside the fixed enum. An entirely invalid list degrades to "no
// status constraint" rather than "match nothing" — the permissive default the
// callers rely on.
func parseStatusList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var statuses []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if models.IsValidTaskStatus(part) {
			statuses = append(statuses, part)
		}
	}
	return statuses
}

func applySort(q *models.TaskQuery, sortBy string) {
	switch sortBy {
	case models.SortOldest:
		q.SortField = "created_at"
		q.SortAscending = true
	case models.SortDeadline:
		q.SortField = "deadline"
		q.SortAscending = true
	case models.SortBudgetHigh:
		q.SortField = "budget_max"
		q.SortAscending = false
	case models.SortBudgetLow:
		q.SortField = "budget_min"
		q.SortAscending = true
	case models.SortUrgent:
		q.SortUrgentFirst = true
		q.SortField = "created_at"
	default:
		q.SortField = "created_at"
		q.SortAscending = false
	}
}
