package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"maistorBack/internal/models"
)

// TaskRepository provides access to the tasks table.
type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

const taskColumns = `t.id, t.slug, t.category, COALESCE(t.subcategory, ''), t.title, t.description,
       t.requirements, t.location_notes, t.title_bg, t.description_bg, t.requirements_bg,
       t.city, t.neighborhood, t.budget_min, t.budget_max, t.budget_type,
       t.deadline, t.is_urgent, t.status, t.customer_id, t.selected_professional_id,
       t.source_locale, COALESCE(t.images, '[]'), t.created_at, t.updated_at`

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scannable) (models.Task, error) {
	var (
		t          models.Task
		imagesJSON []byte
	)
	err := row.Scan(
		&t.ID, &t.Slug, &t.Category, &t.Subcategory, &t.Title, &t.Description,
		&t.Requirements, &t.LocationNotes, &t.TitleBG, &t.DescriptionBG, &t.RequirementsBG,
		&t.City, &t.Neighborhood, &t.BudgetMin, &t.BudgetMax, &t.BudgetType,
		&t.Deadline, &t.IsUrgent, &t.Status, &t.CustomerID, &t.SelectedProfessionalID,
		&t.SourceLocale, &imagesJSON, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &t.Images); err != nil {
			return models.Task{}, fmt.Errorf("failed to decode images json: %w", err)
		}
	}
	return t, nil
}

// List executes the page query and the count query built from the same
// predicate set, then attaches per-task pending application counts.
func (r *TaskRepository) List(ctx context.Context, q models.TaskQuery) ([]models.Task, int64, error) {
	where, params := taskPredicates(q)

	var total int64
	countQuery := "SELECT COUNT(*) FROM tasks t" + where
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, models.WrapDBError("count tasks", err)
	}
	if total == 0 {
		return []models.Task{}, 0, nil
	}

	pageQuery := "SELECT " + taskColumns + " FROM tasks t" + where + orderClause(q)
	params = append(params, q.Limit, q.Offset)
	pageQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(params)-1, len(params))

	rows, err := r.DB.QueryContext(ctx, pageQuery, params...)
	if err != nil {
		return nil, 0, models.WrapDBError("list tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, models.WrapDBError("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, models.WrapDBError("list tasks", err)
	}

	if err := r.attachPendingCounts(ctx, tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListByApplicant returns tasks the given professional has applied to,
// narrowed by the same filter predicates as List.
func (r *TaskRepository) ListByApplicant(ctx context.Context, professionalID string, q models.TaskQuery) ([]models.Task, int64, error) {
	where, params := taskPredicates(q)

	params = append(params, professionalID)
	applied := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM task_applications a WHERE a.task_id = t.id AND a.professional_id = $%d)",
		len(params))
	if where == "" {
		where = " WHERE " + applied
	} else {
		where += " AND " + applied
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks t"+where, params...).Scan(&total); err != nil {
		return nil, 0, models.WrapDBError("count applied tasks", err)
	}
	if total == 0 {
		return []models.Task{}, 0, nil
	}

	pageQuery := "SELECT " + taskColumns + " FROM tasks t" + where + orderClause(q)
	params = append(params, q.Limit, q.Offset)
	pageQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(params)-1, len(params))

	rows, err := r.DB.QueryContext(ctx, pageQuery, params...)
	if err != nil {
		return nil, 0, models.WrapDBError("list applied tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, models.WrapDBError("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, models.WrapDBError("list applied tasks", err)
	}

	if err := r.attachPendingCounts(ctx, tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// FindByRef fetches a single task by id or slug. Not-found is a successful
// nil result, never an error. The owning customer's limited public profile is
// attached via a side lookup that degrades to nil when the record is missing.
func (r *TaskRepository) FindByRef(ctx context.Context, ref models.TaskRef) (*models.Task, error) {
	if ref.IsZero() {
		return nil, nil
	}

	query := "SELECT " + taskColumns + " FROM tasks t WHERE "
	var arg interface{}
	if ref.ID != "" {
		query += "t.id = $1"
		arg = ref.ID
	} else {
		query += "t.slug = $1"
		arg = ref.Slug
	}

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, models.WrapDBError("find task", err)
	}

	count, err := countPendingApplications(ctx, r.DB, t.ID)
	if err != nil {
		return nil, err
	}
	t.PendingApplications = count

	customer, err := r.customerSummary(ctx, t.CustomerID)
	if err != nil {
		return nil, err
	}
	t.Customer = customer

	return &t, nil
}

// customerSummary is a denormalized side lookup, not a join; a missing
// customer record yields nil rather than failing the whole detail fetch.
func (r *TaskRepository) customerSummary(ctx context.Context, customerID string) (*models.CustomerSummary, error) {
	var c models.CustomerSummary
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, avatar_url, COALESCE(city, ''), created_at
          FROM customers
         WHERE id = $1
    `, customerID).Scan(&c.ID, &c.FirstName, &c.LastName, &c.AvatarURL, &c.City, &c.MemberFrom)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, models.WrapDBError("customer summary", err)
	}
	return &c, nil
}

// Create inserts the task, generating a unique slug from title, city and the
// category label (already translated into the task's source language).
// A slug collision racing between the uniqueness check and the insert is
// retried exactly once with a freshly computed disambiguator.
func (r *TaskRepository) Create(ctx context.Context, t models.Task, categoryLabel string) (models.Task, error) {
	base := slugify(t.Title, t.City, categoryLabel)

	for attempt := 0; attempt < 2; attempt++ {
		slug, err := r.nextAvailableSlug(ctx, base)
		if err != nil {
			return models.Task{}, err
		}
		t.Slug = slug

		err = r.insertTask(ctx, &t)
		if err == nil {
			return t, nil
		}
		if !isUniqueViolation(err) {
			return models.Task{}, models.WrapDBError("create task", err)
		}
	}
	return models.Task{}, models.ErrSlugConflict
}

func (r *TaskRepository) nextAvailableSlug(ctx context.Context, base string) (string, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE slug = $1 OR slug LIKE $2`,
		base, base+"-%",
	).Scan(&n)
	if err != nil {
		return "", models.WrapDBError("slug lookup", err)
	}
	if n == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, n+1), nil
}

func (r *TaskRepository) insertTask(ctx context.Context, t *models.Task) error {
	imagesJSON, err := json.Marshal(t.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	return r.DB.QueryRowContext(ctx, `
        INSERT INTO tasks (slug, category, subcategory, title, description,
                           requirements, location_notes, city, neighborhood,
                           budget_min, budget_max, budget_type, deadline, is_urgent,
                           status, customer_id, source_locale, images)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING id, created_at, updated_at
    `,
		t.Slug, t.Category, nullIfEmpty(t.Subcategory), t.Title, t.Description,
		t.Requirements, t.LocationNotes, t.City, t.Neighborhood,
		t.BudgetMin, t.BudgetMax, t.BudgetType, t.Deadline, t.IsUrgent,
		t.Status, t.CustomerID, t.SourceLocale, string(imagesJSON),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update persists the merged record. The service layer is responsible for
// loading, authorizing and merging before calling this.
func (r *TaskRepository) Update(ctx context.Context, t models.Task) (models.Task, error) {
	imagesJSON, err := json.Marshal(t.Images)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to marshal images: %w", err)
	}

	err = r.DB.QueryRowContext(ctx, `
        UPDATE tasks
           SET title = $1, description = $2, requirements = $3, location_notes = $4,
               category = $5, subcategory = $6, neighborhood = $7,
               budget_min = $8, budget_max = $9, budget_type = $10,
               deadline = $11, is_urgent = $12, images = $13, updated_at = now()
         WHERE id = $14
        RETURNING updated_at
    `,
		t.Title, t.Description, t.Requirements, t.LocationNotes,
		t.Category, nullIfEmpty(t.Subcategory), t.Neighborhood,
		t.BudgetMin, t.BudgetMax, t.BudgetType,
		t.Deadline, t.IsUrgent, string(imagesJSON), t.ID,
	).Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Task{}, models.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, models.WrapDBError("update task", err)
	}
	return t, nil
}

// UpdateStatus writes a bare status transition (delete-as-cancel lives here).
func (r *TaskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return models.WrapDBError("update task status", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.WrapDBError("update task status", err)
	}
	if rows == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// SaveTranslations persists pivot-language fields. The stamp guard discards
// translations of source text that was edited after the job was enqueued:
// zero rows affected means the result was stale and is reported as applied=false.
func (r *TaskRepository) SaveTranslations(ctx context.Context, taskID string, tr models.TaskTranslation, stamp time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE tasks
           SET title_bg        = COALESCE($1, title_bg),
               description_bg  = COALESCE($2, description_bg),
               requirements_bg = COALESCE($3, requirements_bg)
         WHERE id = $4 AND updated_at = $5
    `, tr.Title, tr.Description, tr.Requirements, taskID, stamp)
	if err != nil {
		return false, models.WrapDBError("save translations", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, models.WrapDBError("save translations", err)
	}
	return rows > 0, nil
}

// Search delegates to the database-side ranked search function over
// title/description/location fields, including translated variants.
func (r *TaskRepository) Search(ctx context.Context, query string, opts models.SearchOptions) ([]models.TaskSearchResult, error) {
	limit := opts.Limit
	if limit < 1 || limit > models.MaxPageLimit {
		limit = models.DefaultPageLimit
	}

	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, slug, category, COALESCE(subcategory, ''), title, description, city,
               budget_min, budget_max, budget_type, deadline, is_urgent,
               status, customer_id, created_at, rank
          FROM search_tasks($1, $2, $3, $4, $5)
    `, query, nullIfEmpty(opts.Status), nullIfEmpty(opts.City), nullIfEmpty(opts.Category), limit)
	if err != nil {
		return nil, models.WrapDBError("search tasks", err)
	}
	defer rows.Close()

	results := []models.TaskSearchResult{}
	for rows.Next() {
		var res models.TaskSearchResult
		if err := rows.Scan(
			&res.ID, &res.Slug, &res.Category, &res.Subcategory, &res.Title, &res.Description,
			&res.City, &res.BudgetMin, &res.BudgetMax, &res.BudgetType, &res.Deadline,
			&res.IsUrgent, &res.Status, &res.CustomerID, &res.CreatedAt, &res.Rank,
		); err != nil {
			return nil, models.WrapDBError("scan search row", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapDBError("search tasks", err)
	}
	return results, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (r *TaskRepository) attachPendingCounts(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	counts, err := pendingCountsByTask(ctx, r.DB, ids)
	if err != nil {
		return err
	}
	for i := range tasks {
		tasks[i].PendingApplications = counts[tasks[i].ID]
	}
	return nil
}
