package models

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Sort options exposed on the list endpoint.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortDeadline   = "deadline"
	SortBudgetHigh = "budget_high"
	SortBudgetLow  = "budget_low"
	SortUrgent     = "urgent"
)

// List modes. Browse forces the open-only status preset; posted and
// applications are markers the service layer resolves into a different
// repository path.
const (
	ModeBrowse       = "browse"
	ModePosted       = "posted"
	ModeApplications = "applications"
)

// TaskQueryParams is the raw, stringly-typed parameter bag as it arrives from
// the HTTP layer. Everything may be empty; nothing past the parser boundary
// touches these values untyped.
type TaskQueryParams struct {
	Page         string
	Limit        string
	Status       string
	Category     string
	Subcategory  string
	City         string
	Neighborhood string
	IsUrgent     string
	BudgetMin    string
	BudgetMax    string
	SortBy       string
	Mode         string

	// Injected by the calling service, never read from end-user input.
	CustomerID string
}

// TaskQuery is the validated descriptor the repository consumes.
type TaskQuery struct {
	CustomerID   string
	Statuses     []string
	Category     string
	Subcategory  string
	City         string
	Neighborhood string
	IsUrgent     *bool
	BudgetMin    *float64
	BudgetMax    *float64

	SortField     string // column name
	SortAscending bool
	// Secondary created_at DESC tie-break, used by the urgent sort.
	SortUrgentFirst bool

	Mode string

	Page   int
	Limit  int
	Offset int
}

// Pagination is the arithmetic metadata attached to every list response.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// NewPagination derives the full metadata block from the requested page/limit
// and the filter-wide total.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1 && total > 0,
	}
}

// TaskListResponse is the paginated list DTO.
type TaskListResponse struct {
	Items      []Task     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// SearchOptions narrows the ranked full-text search.
type SearchOptions struct {
	Status   string
	City     string
	Category string
	Limit    int
}
