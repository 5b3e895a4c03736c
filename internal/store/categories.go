package store

import (
	"fmt"

	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/storage"
)

// CategoryStore holds the category collection. Categories carry no
// timestamps and no derived view; consumers treat them as a lookup
// set keyed by ID.
type CategoryStore struct {
	storage    storage.Storage
	categories []model.Category
}

// NewCategoryStore loads the collection from storage. When nothing
// has been persisted yet the built-in default set is returned.
func NewCategoryStore(st storage.Storage) (*CategoryStore, error) {
	categories, err := st.LoadCategories()
	if err != nil {
		return nil, err
	}
	return &CategoryStore{storage: st, categories: categories}, nil
}

// Add appends a freshly created category and persists the collection.
func (s *CategoryStore) Add(params model.NewCategoryParams) (model.Category, error) {
	c := model.NewCategory(params)
	next := append(s.snapshot(), c)
	if err := s.persist(next); err != nil {
		return model.Category{}, err
	}
	s.categories = next
	return c, nil
}

// UpdateCategoryParams describes a partial category update. Nil
// fields are left unchanged.
type UpdateCategoryParams struct {
	Name  *string
	Color *string
	Icon  *string
}

// Update merges the given fields into the category with the given ID.
// An unknown ID is a silent no-op reported via the boolean.
func (s *CategoryStore) Update(id string, params UpdateCategoryParams) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := s.snapshot()
	c := &next[idx]
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Color != nil {
		c.Color = *params.Color
	}
	if params.Icon != nil {
		c.Icon = *params.Icon
	}

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.categories = next
	return true, nil
}

// Delete removes the category with the given ID. Bookmarks that
// reference it keep their stale ID; there is no cascade.
func (s *CategoryStore) Delete(id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := append(s.snapshot()[:idx], s.categories[idx+1:]...)
	if err := s.persist(next); err != nil {
		return false, err
	}
	s.categories = next
	return true, nil
}

// All returns a copy of the category collection.
func (s *CategoryStore) All() []model.Category {
	return s.snapshot()
}

// Get returns the category with the given ID. Callers rendering a
// bookmark must treat a miss as "uncategorized", not as an error.
func (s *CategoryStore) Get(id string) (model.Category, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Category{}, false
	}
	return s.categories[idx], true
}

// GetByName returns the first category with the given display name.
func (s *CategoryStore) GetByName(name string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}

// Len returns the collection size.
func (s *CategoryStore) Len() int {
	return len(s.categories)
}

func (s *CategoryStore) indexOf(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CategoryStore) snapshot() []model.Category {
	next := make([]model.Category, len(s.categories))
	copy(next, s.categories)
	return next
}

func (s *CategoryStore) persist(categories []model.Category) error {
	if err := s.storage.SaveCategories(categories); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
