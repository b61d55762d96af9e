package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amikke/pantry-api/models"
	"github.com/amikke/pantry-api/repository"
)

// fakeProductRepo is an in-memory stand-in for the Postgres repository. It
// mirrors the real query semantics: exact-match duplicate detection,
// case-insensitive substring name filtering, and offset/limit windowing over
// a sorted result set.
type fakeProductRepo struct {
	products []models.Product
	now      time.Time
	err      error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{now: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing timestamp so created_at ordering is
// deterministic across inserts.
func (f *fakeProductRepo) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeProductRepo) Create(_ context.Context, arg repository.CreateProductParams) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.products {
		if p.UserID == arg.UserID && p.Name == arg.Name {
			return models.Product{}, repository.ErrDuplicateProductName
		}
	}

	ts := f.tick()
	product := models.Product{
		ID:         uuid.New(),
		UserID:     arg.UserID,
		Name:       arg.Name,
		CategoryID: arg.CategoryID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	f.products = append(f.products, product)
	return product, nil
}

func (f *fakeProductRepo) Get(_ context.Context, userID, productID uuid.UUID) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.products {
		if p.ID == productID && p.UserID == userID {
			return p, nil
		}
	}
	return models.Product{}, repository.ErrProductNotFound
}

func (f *fakeProductRepo) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, p := range f.products {
		if p.UserID == userID && p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) Count(_ context.Context, userID uuid.UUID, filter models.ProductFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.matching(userID, filter))), nil
}

func (f *fakeProductRepo) List(_ context.Context, userID uuid.UUID, filter models.ProductFilter, s models.ProductSort, offset, limit int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}

	matched := f.matching(userID, filter)
	sortProducts(matched, s)

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeProductRepo) Update(_ context.Context, arg repository.UpdateProductParams) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.products {
		if p.UserID == arg.UserID && p.Name == arg.Name && p.ID != arg.ID {
			return models.Product{}, repository.ErrDuplicateProductName
		}
	}
	for i, p := range f.products {
		if p.ID == arg.ID && p.UserID == arg.UserID {
			f.products[i].Name = arg.Name
			f.products[i].CategoryID = arg.CategoryID
			f.products[i].UpdatedAt = f.tick()
			return f.products[i], nil
		}
	}
	return models.Product{}, repository.ErrProductNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, productID uuid.UUID) error {
	for i, p := range f.products {
		if p.ID == productID {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (f *fakeProductRepo) matching(userID uuid.UUID, filter models.ProductFilter) []models.Product {
	var matched []models.Product
	for _, p := range f.products {
		if p.UserID != userID {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID.String() != *filter.CategoryID {
			continue
		}
		if filter.ProductName != nil &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(*filter.ProductName)) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func sortProducts(products []models.Product, s models.ProductSort) {
	sort.SliceStable(products, func(i, j int) bool {
		var less bool
		switch s.Field {
		case models.SortFieldName:
			less = products[i].Name < products[j].Name
		case models.SortFieldUpdatedAt:
			less = products[i].UpdatedAt.Before(products[j].UpdatedAt)
		default:
			less = products[i].CreatedAt.Before(products[j].CreatedAt)
		}
		if s.Order == models.SortDesc {
			return !less
		}
		return less
	})
}

type fakeCategoryRepo struct {
	categories []models.Category
	err        error
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Category, len(f.categories))
	copy(out, f.categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Exists(_ context.Context, categoryID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, c := range f.categories {
		if c.ID == categoryID {
			return true, nil
		}
	}
	return false, nil
}
