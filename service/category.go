package service

import (
	"context"
	"fmt"

	"github.com/amikke/pantry-api/models"
	"github.com/amikke/pantry-api/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*models.CategoryResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	response := make([]*models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, &models.CategoryResponse{
			ID:   c.ID.String(),
			Name: c.Name,
		})
	}
	return response, nil
}
