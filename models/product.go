package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents the business domain model
type Product struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	CategoryID uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductCreateRequest represents input for product creation
type ProductCreateRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// ProductUpdateRequest represents input for product updates.
// Updates carry the full product shape, same as creation.
type ProductUpdateRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// ProductResponse represents output for product data
type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// ProductFilter narrows a product listing. Both fields are optional and
// combined with AND when present. CategoryID is an exact match, ProductName
// a case-insensitive substring match.
type ProductFilter struct {
	CategoryID  *string `json:"category_id,omitempty"`
	ProductName *string `json:"product_name,omitempty"`
}

type SortField string

const (
	SortFieldName      SortField = "name"
	SortFieldCreatedAt SortField = "created_at"
	SortFieldUpdatedAt SortField = "updated_at"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type ProductSort struct {
	Field SortField
	Order SortOrder
}

// ListProductsQuery represents the query parameters of a product listing
type ListProductsQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
}

// PaginationMeta describes the position of a page within the full result set
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type ListProductsResponse struct {
	Products   []*ProductResponse `json:"products"`
	Pagination PaginationMeta     `json:"pagination"`
}
