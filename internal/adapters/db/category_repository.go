package db

import (
	"context"
	"database/sql"
	"fmt"

	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
)

// CategoryRepository implements the category repository interface
type CategoryRepository struct {
	conn *Connection
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(conn *Connection) *CategoryRepository {
	return &CategoryRepository{conn: conn}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *shared.Category) error {
	query := `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		category.ID,
		category.Name,
	)

	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*shared.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		WHERE id = $1
	`

	var category shared.Category
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*shared.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*shared.Category
	for rows.Next() {
		var category shared.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
