package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amikke/pantry-api/models"
)

// DBTX is the subset of pgx a repository needs. Both *pgxpool.Pool and pgx.Tx
// satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CreateProductParams struct {
	UserID     uuid.UUID
	Name       string
	CategoryID uuid.UUID
}

type UpdateProductParams struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	CategoryID uuid.UUID
}

type ProductRepository interface {
	Create(ctx context.Context, arg CreateProductParams) (models.Product, error)
	Get(ctx context.Context, userID, productID uuid.UUID) (models.Product, error)
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	Count(ctx context.Context, userID uuid.UUID, filter models.ProductFilter) (int64, error)
	List(ctx context.Context, userID uuid.UUID, filter models.ProductFilter, sort models.ProductSort, offset, limit int) ([]models.Product, error)
	Update(ctx context.Context, arg UpdateProductParams) (models.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
}

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, user_id, name, category_id, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, arg CreateProductParams) (models.Product, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO products (user_id, name, category_id)
		 VALUES ($1, $2, $3)
		 RETURNING `+productColumns,
		pgtype.UUID{Bytes: arg.UserID, Valid: true},
		arg.Name,
		pgtype.UUID{Bytes: arg.CategoryID, Valid: true},
	)

	product, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicateProductName
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *productRepository) Get(ctx context.Context, userID, productID uuid.UUID) (models.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND user_id = $2`,
		pgtype.UUID{Bytes: productID, Valid: true},
		pgtype.UUID{Bytes: userID, Valid: true},
	)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

// ExistsByName probes for an exact, case-sensitive name match. This is the
// uniqueness pre-check; the unique index on (user_id, name) remains the
// authoritative guard under concurrent creates.
func (r *productRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE user_id = $1 AND name = $2)`,
		pgtype.UUID{Bytes: userID, Valid: true},
		name,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *productRepository) Count(ctx context.Context, userID uuid.UUID, filter models.ProductFilter) (int64, error) {
	where, args := buildProductWhere(userID, filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter models.ProductFilter,
	sort models.ProductSort,
	offset, limit int,
) ([]models.Product, error) {
	where, args := buildProductWhere(userID, filter)

	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderByClause(sort), len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, arg UpdateProductParams) (models.Product, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $1, category_id = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+productColumns,
		arg.Name,
		pgtype.UUID{Bytes: arg.CategoryID, Valid: true},
		pgtype.UUID{Bytes: arg.ID, Valid: true},
		pgtype.UUID{Bytes: arg.UserID, Valid: true},
	)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicateProductName
		}
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes a product row. Not exposed over HTTP; used by maintenance
// tooling and test cleanup.
func (r *productRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM products WHERE id = $1`,
		pgtype.UUID{Bytes: productID, Valid: true},
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// buildProductWhere assembles the WHERE clause shared by Count and List so the
// two queries always agree on which rows are in the result set.
func buildProductWhere(userID uuid.UUID, filter models.ProductFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{pgtype.UUID{Bytes: userID, Valid: true}}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d::uuid", len(args)))
	}
	if filter.ProductName != nil {
		args = append(args, "%"+*filter.ProductName+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func orderByClause(sort models.ProductSort) string {
	column := "created_at"
	switch sort.Field {
	case models.SortFieldName:
		column = "name"
	case models.SortFieldUpdatedAt:
		column = "updated_at"
	}

	direction := "DESC"
	if sort.Order == models.SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		id         pgtype.UUID
		userID     pgtype.UUID
		name       string
		categoryID pgtype.UUID
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(&id, &userID, &name, &categoryID, &createdAt, &updatedAt)
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		ID:         uuid.UUID(id.Bytes),
		UserID:     uuid.UUID(userID.Bytes),
		Name:       name,
		CategoryID: uuid.UUID(categoryID.Bytes),
		CreatedAt:  createdAt.Time,
		UpdatedAt:  updatedAt.Time,
	}, nil
}
