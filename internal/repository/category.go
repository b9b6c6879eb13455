package repository

import (
	"fmt"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type CategoryRepository struct {
	store storage.Provider
	opts  options
}

func NewCategoryRepository(store storage.Provider, opts ...Option) *CategoryRepository {
	return &CategoryRepository{store: store, opts: buildOptions(opts)}
}

// FetchAll returns every category with its trackers, both in creation order.
func (r *CategoryRepository) FetchAll() ([]models.Category, error) {
	return r.store.ListCategories()
}

func (r *CategoryRepository) Get(id string) (models.Category, error) {
	return r.store.GetCategory(id)
}

// Add creates a category and returns its id. The title is trimmed first.
func (r *CategoryRepository) Add(title string) (string, error) {
	title, err := models.NormalizeCategoryTitle(title)
	if err != nil {
		return "", err
	}

	category := models.Category{
		ID:        r.opts.newID(),
		Title:     title,
		CreatedAt: r.opts.now(),
	}
	if err := r.store.CreateCategory(category); err != nil {
		return "", err
	}

	logger.Debug("Category added", "id", category.ID, "title", category.Title)
	return category.ID, nil
}

func (r *CategoryRepository) Update(id, title string) error {
	title, err := models.NormalizeCategoryTitle(title)
	if err != nil {
		return err
	}

	category, err := r.store.GetCategory(id)
	if err != nil {
		return err
	}
	category.Title = title
	if err := r.store.UpdateCategory(category); err != nil {
		return err
	}

	logger.Debug("Category renamed", "id", id, "title", title)
	return nil
}

// Delete removes an empty category. Trackers are never deleted along with it.
func (r *CategoryRepository) Delete(id string) error {
	category, err := r.store.GetCategory(id)
	if err != nil {
		return err
	}
	if category.HasTrackers() {
		return fmt.Errorf("%w (%d in %q)", apperrors.ErrHasTrackers, len(category.Trackers), category.Title)
	}
	if err := r.store.DeleteCategory(id); err != nil {
		return err
	}

	logger.Debug("Category deleted", "id", id)
	return nil
}

// FindOrCreate returns the id of the first category whose title equals title
// exactly, creating one if there is none. Matching is case-sensitive: "Sport"
// and "sport" are different categories.
func (r *CategoryRepository) FindOrCreate(title string) (string, error) {
	title, err := models.NormalizeCategoryTitle(title)
	if err != nil {
		return "", err
	}

	categories, err := r.store.ListCategories()
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.Title == title {
			return c.ID, nil
		}
	}

	return r.Add(title)
}

// Subscribe calls observer after every committed category change, including
// changes to the trackers a category owns.
func (r *CategoryRepository) Subscribe(observer storage.Observer) func() {
	return r.store.Subscribe(storage.KindCategory, observer)
}
