package repositories

import (
	"fmt"
	"strings"

	"maistorBack/internal/models"
)

// taskPredicates turns the validated descriptor into a WHERE clause and its
// positional args. Both the page query and the count query reuse the exact
// same predicate set so pagination metadata always matches the page slice.
func taskPredicates(q models.TaskQuery) (string, []interface{}) {
	var (
		conditions []string
		params     []interface{}
	)

	add := func(cond string, val interface{}) {
		params = append(params, val)
		conditions = append(conditions, fmt.Sprintf(cond, len(params)))
	}

	if q.CustomerID != "" {
		add("t.customer_id = $%d", q.CustomerID)
	}

	if len(q.Statuses) > 0 {
		placeholders := make([]string, 0, len(q.Statuses))
		for _, s := range q.Statuses {
			params = append(params, s)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(params)))
		}
		conditions = append(conditions, fmt.Sprintf("t.status IN (%s)", strings.Join(placeholders, ",")))
	}

	if q.Category != "" {
		add("t.category = $%d", q.Category)
	}
	if q.Subcategory != "" {
		add("t.subcategory = $%d", q.Subcategory)
	}
	if q.City != "" {
		add("t.city = $%d", q.City)
	}
	if q.Neighborhood != "" {
		add("t.neighborhood = $%d", q.Neighborhood)
	}
	if q.IsUrgent != nil {
		add("t.is_urgent = $%d", *q.IsUrgent)
	}
	if q.BudgetMin != nil {
		add("t.budget_min >= $%d", *q.BudgetMin)
	}
	if q.BudgetMax != nil {
		add("t.budget_max <= $%d", *q.BudgetMax)
	}

	if len(conditions) == 0 {
		return "", params
	}
	return " WHERE " + strings.Join(conditions, " AND "), params
}

// orderClause maps the resolved sort onto SQL. Nullable sort columns order
// NULLS LAST so tasks missing a deadline or budget trail the list.
func orderClause(q models.TaskQuery) string {
	if q.SortUrgentFirst {
		return " ORDER BY t.is_urgent DESC, t.created_at DESC"
	}

	dir := "DESC"
	if q.SortAscending {
		dir = "ASC"
	}

	switch q.SortField {
	case "deadline", "budget_min", "budget_max":
		return fmt.Sprintf(" ORDER BY t.%s %s NULLS LAST, t.created_at DESC", q.SortField, dir)
	case "created_at":
		return fmt.Sprintf(" ORDER BY t.created_at %s", dir)
	default:
		return " ORDER BY t.created_at DESC"
	}
}
