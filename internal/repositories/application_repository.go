package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"maistorBack/internal/models"
)

// ApplicationRepository provides access to task applications. Only the
// pending-count aggregates are consumed by this service; application
// workflows themselves live elsewhere.
type ApplicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// CountPending returns the number of applications still awaiting a decision.
// Rejected, withdrawn and accepted applications never count toward the badge.
func (r *ApplicationRepository) CountPending(ctx context.Context, taskID string) (int, error) {
	return countPendingApplications(ctx, r.DB, taskID)
}

func countPendingApplications(ctx context.Context, db *sql.DB, taskID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM task_applications
         WHERE task_id = $1 AND status = $2
    `, taskID, models.ApplicationStatusPending).Scan(&count)
	if err != nil {
		return 0, models.WrapDBError("count pending applications", err)
	}
	return count, nil
}

// pendingCountsByTask batches the pending-count aggregate for one result page.
// Tasks without pending applications are simply absent from the map.
func pendingCountsByTask(ctx context.Context, db *sql.DB, taskIDs []string) (map[string]int, error) {
	if len(taskIDs) == 0 {
		return map[string]int{}, nil
	}

	params := make([]interface{}, 0, len(taskIDs)+1)
	params = append(params, models.ApplicationStatusPending)
	placeholders := make([]string, 0, len(taskIDs))
	for _, id := range taskIDs {
		params = append(params, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(params)))
	}

	query := fmt.Sprintf(`
        SELECT task_id, COUNT(*) FROM task_applications
         WHERE status = $1 AND task_id IN (%s)
         GROUP BY task_id
    `, strings.Join(placeholders, ","))

	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, models.WrapDBError("count pending applications", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(taskIDs))
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, models.WrapDBError("scan pending count", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapDBError("count pending applications", err)
	}
	return counts, nil
}
