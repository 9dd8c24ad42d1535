package categories

import (
	"fmt"
	"os"

	"github.com/kontovy/kontovy/internal/model"
)

// Service provides in-memory lookup over the category registry.
type Service struct {
	categories []model.Category
	byID       map[string]model.Category
}

// NewService creates a Service from a slice of categories and subcategories.
func NewService(categories []model.Category) *Service {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Service{categories: categories, byID: byID}
}

// Load reads a registry CSV file and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening category registry: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading category registry: %w", err)
	}
	return NewService(cats), nil
}

// All returns all registry entries.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a registry entry by id.
func (s *Service) Get(id string) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether id names a top-level category.
func (s *Service) Exists(id string) bool {
	c, ok := s.byID[id]
	return ok && c.ParentID == ""
}

// SubcategoryOf reports whether subID is a subcategory of categoryID.
func (s *Service) SubcategoryOf(subID, categoryID string) bool {
	c, ok := s.byID[subID]
	return ok && c.ParentID == categoryID
}

// Subcategories returns the subcategories of a category.
func (s *Service) Subcategories(categoryID string) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.ParentID == categoryID {
			result = append(result, c)
		}
	}
	return result
}

// Save writes the registry to a CSV file.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating category registry file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.categories); err != nil {
		return fmt.Errorf("writing category registry: %w", err)
	}
	return nil
}
