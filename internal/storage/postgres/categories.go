package postgres

import (
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

func (s *Store) CreateCategory(category models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, title, created_at)
		VALUES ($1, $2, $3)`,
		category.ID, category.Title, category.CreatedAt.UTC())
	if err != nil {
		return apperrors.Persist("create category", err)
	}

	s.Notify(storage.KindCategory)
	return nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(`SELECT id, title, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, apperrors.ErrCategoryNotFound
		}
		return models.Category{}, apperrors.Load("get category", err)
	}

	trackers, err := s.queryTrackers(`WHERE category_id = $1`, id)
	if err != nil {
		return models.Category{}, err
	}
	c.Trackers = trackers

	return c, nil
}

func (s *Store) ListCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, title, created_at FROM categories ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Load("list categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt); err != nil {
			s.Skip(storage.KindCategory, c.ID, err)
			continue
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Load("list categories", err)
	}

	trackers, err := s.ListTrackers()
	if err != nil {
		return nil, err
	}
	return storage.GroupTrackers(categories, trackers), nil
}

func (s *Store) UpdateCategory(category models.Category) error {
	result, err := s.db.Exec(`UPDATE categories SET title = $1 WHERE id = $2`, category.Title, category.ID)
	if err != nil {
		return apperrors.Persist("update category", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persist("update category", err)
	}
	if rows == 0 {
		return apperrors.ErrCategoryNotFound
	}

	s.Notify(storage.KindCategory)
	return nil
}

func (s *Store) DeleteCategory(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Persist("delete category", err)
	}
	defer tx.Rollback()

	// Lock the category row so a concurrent tracker insert cannot slip in.
	var found string
	err = tx.QueryRow(`SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return apperrors.Load("delete category", err)
	}

	var count int
	if err := tx.QueryRow(`SELECT count(*) FROM trackers WHERE category_id = $1`, id).Scan(&count); err != nil {
		return apperrors.Load("count trackers", err)
	}
	if count > 0 {
		return apperrors.ErrHasTrackers
	}

	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return apperrors.Persist("delete category", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Persist("delete category", err)
	}

	s.Notify(storage.KindCategory)
	return nil
}
