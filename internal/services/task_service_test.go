package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"maistorBack/internal/models"
)

type fakeTaskStore struct {
	tasks map[string]models.Task

	listQuery       *models.TaskQuery
	applicantID     string
	created         *models.Task
	createdLabel    string
	updated         *models.Task
	statusTaskID    string
	statusValue     string
	searchQuery     string
	listResult      []models.Task
	listTotal       int64
	applicantResult []models.Task
	applicantTotal  int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]models.Task{}}
}

func (f *fakeTaskStore) List(ctx context.Context, q models.TaskQuery) ([]models.Task, int64, error) {
	f.listQuery = &q
	return f.listResult, f.listTotal, nil
}

func (f *fakeTaskStore) ListByApplicant(ctx context.Context, professionalID string, q models.TaskQuery) ([]models.Task, int64, error) {
	f.applicantID = professionalID
	f.listQuery = &q
	return f.applicantResult, f.applicantTotal, nil
}

func (f *fakeTaskStore) FindByRef(ctx context.Context, ref models.TaskRef) (*models.Task, error) {
	for _, t := range f.tasks {
		if (ref.ID != "" && t.ID == ref.ID) || (ref.Slug != "" && t.Slug == ref.Slug) {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, t models.Task, categoryLabel string) (models.Task, error) {
	t.ID = "generated-id"
	t.Slug = "generated-slug"
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.created = &t
	f.createdLabel = categoryLabel
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, t models.Task) (models.Task, error) {
	t.UpdatedAt = time.Now()
	f.updated = &t
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskStore) UpdateStatus(ctx context.Context, id, status string) error {
	f.statusTaskID = id
	f.statusValue = status
	return nil
}

func (f *fakeTaskStore) Search(ctx context.Context, query string, opts models.SearchOptions) ([]models.TaskSearchResult, error) {
	f.searchQuery = query
	return nil, nil
}

type fakeLabelResolver struct {
	code   string
	locale string
	label  string
}

func (f *fakeLabelResolver) LabelFor(ctx context.Context, code, locale string) string {
	f.code = code
	f.locale = locale
	if f.label != "" {
		return f.label
	}
	return code
}

type fakeEnqueuer struct {
	jobs []TranslationJob
}

func (f *fakeEnqueuer) Enqueue(job TranslationJob) {
	f.jobs = append(f.jobs, job)
}

func newTestService() (*TaskService, *fakeTaskStore, *fakeLabelResolver, *fakeEnqueuer) {
	store := newFakeTaskStore()
	labels := &fakeLabelResolver{}
	queue := &fakeEnqueuer{}
	return NewTaskService(store, labels, queue), store, labels, queue
}

func validCreateInput() models.CreateTaskInput {
	return models.CreateTaskInput{
		Title:        "Fix leaking kitchen sink",
		Description:  "The sink in the kitchen has been leaking for a week and needs repair.",
		Category:     "plumbing",
		City:         "Sofia",
		BudgetType:   models.BudgetTypeFixed,
		SourceLocale: "en",
	}
}

func TestListTasksPostedModeRequiresViewer(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ListTasks(context.Background(), models.TaskQueryParams{Mode: models.ModePosted}, "")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestListTasksPostedModeInjectsViewer(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.ListTasks(context.Background(), models.TaskQueryParams{Mode: models.ModePosted}, "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listQuery == nil || store.listQuery.CustomerID != "cust-1" {
		t.Errorf("customer id not injected: %+v", store.listQuery)
	}
}

func TestListTasksApplicationsModeUsesApplicantPath(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.ListTasks(context.Background(), models.TaskQueryParams{Mode: models.ModeApplications}, "pro-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.applicantID != "pro-9" {
		t.Errorf("applicant id = %q, want pro-9", store.applicantID)
	}
}

func TestListTasksPagination(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.listTotal = 45

	resp, err := svc.ListTasks(context.Background(), models.TaskQueryParams{Limit: "20", Page: "2"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := resp.Pagination
	if p.Total != 45 || p.TotalPages != 3 || !p.HasNext || !p.HasPrevious {
		t.Errorf("pagination = %+v, want total=45 totalPages=3 hasNext hasPrevious", p)
	}
}

func TestGetTaskDetailNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetTaskDetail(context.Background(), "missing-slug", "")
	if !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("got %v, want ErrTaskNotFound", err)
	}
}

func TestGetTaskDetailOwnerFlag(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.tasks["t1"] = models.Task{ID: "t1", Slug: "fix-sink-sofia", CustomerID: "cust-1", PendingApplications: 3}

	detail, err := svc.GetTaskDetail(context.Background(), "fix-sink-sofia", "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.RelatedData.IsOwner {
		t.Error("owner flag not set for owning viewer")
	}
	if detail.RelatedData.ApplicationsCount != 3 {
		t.Errorf("applications count = %d, want 3", detail.RelatedData.ApplicationsCount)
	}

	detail, err = svc.GetTaskDetail(context.Background(), "t1", "cust-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.RelatedData.IsOwner {
		t.Error("owner flag set for non-owner viewer")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	input := validCreateInput()
	input.Title = "Hi"
	_, err := svc.CreateTask(context.Background(), input, "cust-1")
	if !models.IsValidation(err) {
		t.Fatalf("short title: got %v, want validation error", err)
	}

	input = validCreateInput()
	input.BudgetType = "whatever"
	_, err = svc.CreateTask(context.Background(), input, "cust-1")
	if !models.IsValidation(err) {
		t.Fatalf("bad budget type: got %v, want validation error", err)
	}

	min, max := 500.0, 100.0
	input = validCreateInput()
	input.BudgetMin, input.BudgetMax = &min, &max
	_, err = svc.CreateTask(context.Background(), input, "cust-1")
	if !models.IsValidation(err) {
		t.Fatalf("inverted budget: got %v, want validation error", err)
	}
}

func TestCreateTaskImageLimit(t *testing.T) {
	svc, _, _, _ := newTestService()

	input := validCreateInput()
	for i := 0; i < models.MaxTaskImages+1; i++ {
		input.Images = append(input.Images, models.TaskImage{URL: "https://cdn.example.com/img.jpg", Position: i})
	}
	_, err := svc.CreateTask(context.Background(), input, "cust-1")
	if !models.IsValidation(err) {
		t.Fatalf("too many images: got %v, want validation error", err)
	}

	input = validCreateInput()
	input.Images = []models.TaskImage{{URL: "not a url"}}
	_, err = svc.CreateTask(context.Background(), input, "cust-1")
	if !models.IsValidation(err) {
		t.Fatalf("malformed image url: got %v, want validation error", err)
	}
}

func TestCreateTaskEnqueuesTranslation(t *testing.T) {
	svc, store, labels, queue := newTestService()
	labels.label = "Plumbing"

	created, err := svc.CreateTask(context.Background(), validCreateInput(), "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != models.TaskStatusOpen {
		t.Errorf("status = %q, want open", created.Status)
	}
	if store.createdLabel != "Plumbing" {
		t.Errorf("category label = %q, want Plumbing", store.createdLabel)
	}
	if labels.locale != "en" {
		t.Errorf("label locale = %q, want source locale en", labels.locale)
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("got %d translation jobs, want 1", len(queue.jobs))
	}
	job := queue.jobs[0]
	if job.TaskID != created.ID || job.SourceLocale != "en" || !job.Stamp.Equal(created.UpdatedAt) {
		t.Errorf("job = %+v, want task %s stamped %v", job, created.ID, created.UpdatedAt)
	}
}

func TestCreateTaskUrgencyFromDeadline(t *testing.T) {
	svc, _, _, _ := newTestService()

	today := time.Now()
	input := validCreateInput()
	input.Deadline = &today
	created, err := svc.CreateTask(context.Background(), input, "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.IsUrgent {
		t.Error("same-day deadline should mark the task urgent")
	}

	nextWeek := time.Now().AddDate(0, 0, 7)
	input = validCreateInput()
	input.Deadline = &nextWeek
	created, err = svc.CreateTask(context.Background(), input, "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.IsUrgent {
		t.Error("future deadline should not mark the task urgent")
	}
}

func TestUpdateTaskForbiddenForNonOwner(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.tasks["t1"] = models.Task{ID: "t1", CustomerID: "cust-1", Title: "Fix leaking kitchen sink"}

	title := "Replace the kitchen sink entirely"
	_, err := svc.UpdateTask(context.Background(), "t1", models.UpdateTaskInput{Title: &title}, "cust-2")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	title := "Replace the kitchen sink entirely"
	_, err := svc.UpdateTask(context.Background(), "missing", models.UpdateTaskInput{Title: &title}, "cust-1")
	if !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("got %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskContentChangeReEnqueues(t *testing.T) {
	svc, store, _, queue := newTestService()
	store.tasks["t1"] = models.Task{
		ID:           "t1",
		CustomerID:   "cust-1",
		Title:        "Fix leaking kitchen sink",
		Description:  "The sink in the kitchen has been leaking for a week.",
		SourceLocale: "en",
	}

	title := "Replace the kitchen sink entirely"
	updated, err := svc.UpdateTask(context.Background(), "t1", models.UpdateTaskInput{Title: &title}, "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("got %d translation jobs, want 1", len(queue.jobs))
	}
	if queue.jobs[0].Title != title || !queue.jobs[0].Stamp.Equal(updated.UpdatedAt) {
		t.Errorf("job = %+v, want updated title and fresh stamp", queue.jobs[0])
	}
}

func TestUpdateTaskNonContentChangeSkipsTranslation(t *testing.T) {
	svc, store, _, queue := newTestService()
	store.tasks["t1"] = models.Task{
		ID:           "t1",
		CustomerID:   "cust-1",
		Title:        "Fix leaking kitchen sink",
		Description:  "The sink in the kitchen has been leaking for a week.",
		SourceLocale: "en",
	}

	min := 200.0
	_, err := svc.UpdateTask(context.Background(), "t1", models.UpdateTaskInput{BudgetMin: &min}, "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Errorf("budget-only update enqueued %d translation jobs", len(queue.jobs))
	}
}

func TestCancelTask(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.tasks["t1"] = models.Task{ID: "t1", CustomerID: "cust-1", Status: models.TaskStatusOpen}

	if err := svc.CancelTask(context.Background(), "t1", "cust-2"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("non-owner cancel: got %v, want ErrForbidden", err)
	}
	if err := svc.CancelTask(context.Background(), "missing", "cust-1"); !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("missing task cancel: got %v, want ErrTaskNotFound", err)
	}

	if err := svc.CancelTask(context.Background(), "t1", "cust-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.statusTaskID != "t1" || store.statusValue != models.TaskStatusCancelled {
		t.Errorf("status update = (%q, %q), want (t1, cancelled)", store.statusTaskID, store.statusValue)
	}
}

func TestSearchTasksRequiresQuery(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.SearchTasks(context.Background(), "   ", models.SearchOptions{})
	if !models.IsValidation(err) {
		t.Fatalf("blank query: got %v, want validation error", err)
	}

	_, err = svc.SearchTasks(context.Background(), " leaking sink ", models.SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.searchQuery != "leaking sink" {
		t.Errorf("search query = %q, want trimmed", store.searchQuery)
	}
}
