package repositories

import (
	"context"
	"database/sql"

	"maistorBack/internal/models"
)

// CategoryRepository resolves labels from the externally maintained taxonomy.
type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// Label returns the human-readable label for a category code in the given
// locale. A code the taxonomy does not know yields a successful empty string.
func (r *CategoryRepository) Label(ctx context.Context, code, locale string) (string, error) {
	var label string
	err := r.DB.QueryRowContext(ctx, `
        SELECT label FROM category_labels
         WHERE category = $1 AND locale = $2
    `, code, locale).Scan(&label)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", models.WrapDBError("category label", err)
	}
	return label, nil
}
