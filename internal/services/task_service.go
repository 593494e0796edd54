package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"maistorBack/internal/models"
)

type taskStore interface {
	List(ctx context.Context, q models.TaskQuery) ([]models.Task, int64, error)
	ListByApplicant(ctx context.Context, professionalID string, q models.TaskQuery) ([]models.Task, int64, error)
	FindByRef(ctx context.Context, ref models.TaskRef) (*models.Task, error)
	Create(ctx context.Context, t models.Task, categoryLabel string) (models.Task, error)
	Update(ctx context.Context, t models.Task) (models.Task, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Search(ctx context.Context, query string, opts models.SearchOptions) ([]models.TaskSearchResult, error)
}

type labelResolver interface {
	LabelFor(ctx context.Context, code, locale string) string
}

type translationEnqueuer interface {
	Enqueue(job TranslationJob)
}

// TaskService composes parsing, repository access and privacy filtering into
// the public task use cases.
type TaskService struct {
	Tasks        taskStore
	Labels       labelResolver
	Translations translationEnqueuer
	Privacy      PrivacyFilter

	validate *validator.Validate
}

func NewTaskService(tasks taskStore, labels labelResolver, translations translationEnqueuer) *TaskService {
	return &TaskService{
		Tasks:        tasks,
		Labels:       labels,
		Translations: translations,
		validate:     validator.New(),
	}
}

// ListTasks is the primary read path: parse → inject viewer → query →
// privacy-filter → paginated DTO.
func (s *TaskService) ListTasks(ctx context.Context, params models.TaskQueryParams, viewerID string) (models.TaskListResponse, error) {
	q, err := ParseTaskQuery(params)
	if err != nil {
		return models.TaskListResponse{}, err
	}

	var (
		tasks []models.Task
		total int64
	)
	switch q.Mode {
	case models.ModePosted:
		if viewerID == "" {
			return models.TaskListResponse{}, models.ErrForbidden
		}
		q.CustomerID = viewerID
		tasks, total, err = s.Tasks.List(ctx, q)
	case models.ModeApplications:
		if viewerID == "" {
			return models.TaskListResponse{}, models.ErrForbidden
		}
		tasks, total, err = s.Tasks.ListByApplicant(ctx, viewerID, q)
	default:
		tasks, total, err = s.Tasks.List(ctx, q)
	}
	if err != nil {
		return models.TaskListResponse{}, err
	}

	return models.TaskListResponse{
		Items:      s.Privacy.ApplyAll(tasks, viewerID),
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// GetTaskDetail fetches a single task by id or slug, promoting the
// repository's nil result into a typed not-found error.
func (s *TaskService) GetTaskDetail(ctx context.Context, idOrSlug, viewerID string) (models.TaskDetail, error) {
	task, err := s.Tasks.FindByRef(ctx, models.ParseTaskRef(idOrSlug))
	if err != nil {
		return models.TaskDetail{}, err
	}
	if task == nil {
		return models.TaskDetail{}, models.ErrTaskNotFound
	}

	filtered := s.Privacy.Apply(*task, viewerID)
	return models.TaskDetail{
		Task: filtered,
		RelatedData: models.TaskRelatedData{
			ApplicationsCount: task.PendingApplications,
			IsOwner:           s.Privacy.IsOwner(*task, viewerID),
		},
	}, nil
}

// CreateTask validates, inserts and returns immediately; translation into the
// pivot language runs in the background and never affects the response.
func (s *TaskService) CreateTask(ctx context.Context, input models.CreateTaskInput, userID string) (models.Task, error) {
	if err := s.validateInput(input); err != nil {
		return models.Task{}, err
	}
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMin > *input.BudgetMax {
		return models.Task{}, models.NewValidationError("budget", "budget_min must not exceed budget_max")
	}
	if !s.canPostTask(userID) {
		return models.Task{}, models.ErrForbidden
	}
	if err := validateImages(input.Images); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		Category:      input.Category,
		Subcategory:   input.Subcategory,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Requirements:  input.Requirements,
		LocationNotes: input.LocationNotes,
		City:          strings.TrimSpace(input.City),
		Neighborhood:  input.Neighborhood,
		BudgetMin:     input.BudgetMin,
		BudgetMax:     input.BudgetMax,
		BudgetType:    input.BudgetType,
		Deadline:      input.Deadline,
		IsUrgent:      isSameDayDeadline(input.Deadline, time.Now()),
		Status:        models.TaskStatusOpen,
		CustomerID:    userID,
		SourceLocale:  input.SourceLocale,
		Images:        input.Images,
	}

	// Slug segments must all be in one language, so the category label is
	// resolved in the task's source locale.
	label := s.Labels.LabelFor(ctx, input.Category, input.SourceLocale)

	created, err := s.Tasks.Create(ctx, task, label)
	if err != nil {
		return models.Task{}, err
	}

	s.Translations.Enqueue(TranslationJob{
		TaskID:       created.ID,
		Title:        created.Title,
		Description:  created.Description,
		Requirements: created.Requirements,
		SourceLocale: created.SourceLocale,
		Stamp:        created.UpdatedAt,
	})

	return created, nil
}

// UpdateTask applies a partial update after authorizing the owner; content
// changes re-trigger background translation with stored values as fallback.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input models.UpdateTaskInput, userID string) (models.Task, error) {
	if err := s.validateInput(input); err != nil {
		return models.Task{}, err
	}

	existing, err := s.Tasks.FindByRef(ctx, models.TaskByID(id))
	if err != nil {
		return models.Task{}, err
	}
	if existing == nil {
		return models.Task{}, models.ErrTaskNotFound
	}
	if existing.CustomerID != userID {
		return models.Task{}, models.ErrForbidden
	}
	if input.Images != nil {
		if err := validateImages(input.Images); err != nil {
			return models.Task{}, err
		}
	}

	task := *existing
	contentChanged := false

	if input.Title != nil && *input.Title != task.Title {
		task.Title = strings.TrimSpace(*input.Title)
		contentChanged = true
	}
	if input.Description != nil && *input.Description != task.Description {
		task.Description = strings.TrimSpace(*input.Description)
		contentChanged = true
	}
	if input.Requirements != nil {
		task.Requirements = input.Requirements
		contentChanged = true
	}
	if input.LocationNotes != nil {
		task.LocationNotes = input.LocationNotes
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Subcategory != nil {
		task.Subcategory = *input.Subcategory
	}
	if input.Neighborhood != nil {
		task.Neighborhood = input.Neighborhood
	}
	if input.BudgetMin != nil {
		task.BudgetMin = input.BudgetMin
	}
	if input.BudgetMax != nil {
		task.BudgetMax = input.BudgetMax
	}
	if task.BudgetMin != nil && task.BudgetMax != nil && *task.BudgetMin > *task.BudgetMax {
		return models.Task{}, models.NewValidationError("budget", "budget_min must not exceed budget_max")
	}
	if input.BudgetType != nil {
		task.BudgetType = *input.BudgetType
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
		task.IsUrgent = isSameDayDeadline(input.Deadline, time.Now())
	}
	if input.Images != nil {
		task.Images = input.Images
	}

	updated, err := s.Tasks.Update(ctx, task)
	if err != nil {
		return models.Task{}, err
	}

	if contentChanged {
		s.Translations.Enqueue(TranslationJob{
			TaskID:       updated.ID,
			Title:        updated.Title,
			Description:  updated.Description,
			Requirements: updated.Requirements,
			SourceLocale: updated.SourceLocale,
			Stamp:        updated.UpdatedAt,
		})
	}

	return updated, nil
}

// CancelTask is the one mutation this layer owns on the status enum:
// delete-as-cancel, never a physical delete.
func (s *TaskService) CancelTask(ctx context.Context, id, userID string) error {
	existing, err := s.Tasks.FindByRef(ctx, models.TaskByID(id))
	if err != nil {
		return err
	}
	if existing == nil {
		return models.ErrTaskNotFound
	}
	if existing.CustomerID != userID {
		return models.ErrForbidden
	}
	return s.Tasks.UpdateStatus(ctx, id, models.TaskStatusCancelled)
}

// SearchTasks exposes the ranked database-side full-text search.
func (s *TaskService) SearchTasks(ctx context.Context, query string, opts models.SearchOptions) ([]models.TaskSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("q", "search query is required")
	}
	return s.Tasks.Search(ctx, query, opts)
}

// canPostTask is the business-rule gate for creation. Nothing restricts
// posting today; the check stays so quota or verification rules have a seat.
func (s *TaskService) canPostTask(userID string) bool {
	return userID != ""
}

func (s *TaskService) validateInput(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return models.NewValidationError(
			strings.ToLower(fe.Field()),
			fmt.Sprintf("failed on the %q rule", fe.Tag()),
		)
	}
	return models.NewValidationError("", err.Error())
}

func validateImages(images []models.TaskImage) error {
	if len(images) > models.MaxTaskImages {
		return models.NewValidationError("images",
			fmt.Sprintf("at most %d images are allowed", models.MaxTaskImages))
	}
	for _, img := range images {
		u, err := url.ParseRequestURI(img.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return models.NewValidationError("images", fmt.Sprintf("invalid image url: %q", img.URL))
		}
	}
	return nil
}

func isSameDayDeadline(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	y1, m1, d1 := deadline.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
