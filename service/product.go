package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amikke/pantry-api/models"
	"github.com/amikke/pantry-api/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type ProductService interface {
	CreateProduct(ctx context.Context, userID uuid.UUID, req models.ProductCreateRequest) (*models.ProductResponse, error)
	GetProduct(ctx context.Context, userID uuid.UUID, id string) (*models.ProductResponse, error)
	ListProducts(ctx context.Context, userID uuid.UUID, page, limit int, filter, sort string) (*models.ListProductsResponse, error)
	UpdateProduct(ctx context.Context, userID uuid.UUID, id string, req models.ProductUpdateRequest) (*models.ProductResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) ProductService {
	return &productService{
		products:   products,
		categories: categories,
	}
}

// CreateProduct runs the category and duplicate-name gates in order, then
// inserts. Each gate fails the whole call; nothing is written on a failed gate.
// Two concurrent creates can both pass the duplicate gate, so the unique index
// on (user_id, name) is what actually decides the race; its violation surfaces
// as ErrDuplicateProductName from the insert itself.
func (s *productService) CreateProduct(ctx context.Context, userID uuid.UUID, req models.ProductCreateRequest) (*models.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyProductName
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrInvalidCategoryID
	}

	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil || !exists {
		return nil, ErrCategoryNotFound
	}

	taken, err := s.products.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate name: %w", err)
	}
	if taken {
		return nil, ErrDuplicateProductName
	}

	product, err := s.products.Create(ctx, repository.CreateProductParams{
		UserID:     userID,
		Name:       name,
		CategoryID: categoryID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateProductName) {
			return nil, ErrDuplicateProductName
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) GetProduct(ctx context.Context, userID uuid.UUID, id string) (*models.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	product, err := s.products.Get(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, userID uuid.UUID, page, limit int, filterStr, sortStr string) (*models.ListProductsResponse, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	filter, err := parseFilter(filterStr)
	if err != nil {
		return nil, err
	}

	sort, err := parseSort(sortStr)
	if err != nil {
		return nil, err
	}

	total, err := s.products.Count(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if total == 0 {
		return &models.ListProductsResponse{
			Products:   []*models.ProductResponse{},
			Pagination: calculatePagination(page, limit, 0),
		}, nil
	}

	offset := (page - 1) * limit
	if int64(offset) >= total {
		// Page past the end of a non-empty result set.
		return &models.ListProductsResponse{
			Products:   []*models.ProductResponse{},
			Pagination: calculatePagination(page, limit, total),
		}, nil
	}

	// The window is inclusive on both ends; the last page may be short.
	end := offset + limit - 1
	if int64(end) > total-1 {
		end = int(total - 1)
	}

	products, err := s.products.List(ctx, userID, filter, sort, offset, end-offset+1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	responses := make([]*models.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}

	return &models.ListProductsResponse{
		Products:   responses,
		Pagination: calculatePagination(page, limit, total),
	}, nil
}

// UpdateProduct re-runs the creation gates against an existing row. The target
// is looked up scoped to the calling user, so a foreign product id behaves
// exactly like a missing one.
func (s *productService) UpdateProduct(ctx context.Context, userID uuid.UUID, id string, req models.ProductUpdateRequest) (*models.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyProductName
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrInvalidCategoryID
	}

	current, err := s.products.Get(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil || !exists {
		return nil, ErrCategoryNotFound
	}

	// Keeping the current name is always allowed; the duplicate gate only
	// applies to renames.
	if name != current.Name {
		taken, err := s.products.ExistsByName(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate name: %w", err)
		}
		if taken {
			return nil, ErrDuplicateProductName
		}
	}

	product, err := s.products.Update(ctx, repository.UpdateProductParams{
		ID:         productID,
		UserID:     userID,
		Name:       name,
		CategoryID: categoryID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrDuplicateProductName) {
			return nil, ErrDuplicateProductName
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return toProductResponse(product), nil
}

// parseFilter decodes the filter query parameter from its JSON encoding.
func parseFilter(raw string) (models.ProductFilter, error) {
	var filter models.ProductFilter
	if raw == "" {
		return filter, nil
	}
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return models.ProductFilter{}, ErrInvalidFilterFormat
	}
	return filter, nil
}

// parseSort decodes "field:direction" and validates both parts against the
// allowed sets. An empty input yields the default ordering, newest first.
func parseSort(raw string) (models.ProductSort, error) {
	if raw == "" {
		return models.ProductSort{Field: models.SortFieldCreatedAt, Order: models.SortDesc}, nil
	}

	field, order, ok := strings.Cut(raw, ":")
	if !ok {
		return models.ProductSort{}, ErrInvalidSortFormat
	}

	switch models.SortField(field) {
	case models.SortFieldName, models.SortFieldCreatedAt, models.SortFieldUpdatedAt:
	default:
		return models.ProductSort{}, ErrInvalidSortFormat
	}

	switch models.SortOrder(order) {
	case models.SortAsc, models.SortDesc:
	default:
		return models.ProductSort{}, ErrInvalidSortFormat
	}

	return models.ProductSort{
		Field: models.SortField(field),
		Order: models.SortOrder(order),
	}, nil
}

func calculatePagination(page, limit int, total int64) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Helper function to convert domain model to response model
func toProductResponse(p models.Product) *models.ProductResponse {
	return &models.ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		CategoryID: p.CategoryID.String(),
		UserID:     p.UserID.String(),
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
