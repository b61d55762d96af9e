package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amikke/pantry-api/models"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

type categoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var (
			id   pgtype.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		categories = append(categories, models.Category{
			ID:   uuid.UUID(id.Bytes),
			Name: name,
		})
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Exists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`,
		pgtype.UUID{Bytes: categoryID, Valid: true},
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
