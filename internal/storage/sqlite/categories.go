package sqlite

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
		VALUES (?, ?, ?)`,
		category.ID, category.Title, formatTime(category.CreatedAt))
	if err != nil {
		return apperrors.Persist("create category", err)
	}

	s.Notify(storage.KindCategory)
	return nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow(`SELECT id, title, created_at FROM categories WHERE id = ?`, id)

	var c models.Category
	var createdAt string
	if err := row.Scan(&c.ID, &c.Title, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, apperrors.ErrCategoryNotFound
		}
		return models.Category{}, apperrors.Load("get category", err)
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Category{}, apperrors.Load("get category", err)
	}

	trackers, err := s.queryTrackers(`WHERE category_id = ?`, id)
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

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Title, &createdAt); err != nil {
			return nil, apperrors.Load("list categories", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
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
	result, err := s.db.Exec(`UPDATE categories SET title = ? WHERE id = ?`, category.Title, category.ID)
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

	var trackers int
	if err := tx.QueryRow(`SELECT count(*) FROM trackers WHERE category_id = ?`, id).Scan(&trackers); err != nil {
		return apperrors.Persist("delete category", err)
	}
	if trackers > 0 {
		return apperrors.ErrHasTrackers
	}

	result, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return apperrors.Persist("delete category", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persist("delete category", err)
	}
	if rows == 0 {
		return apperrors.ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Persist("delete category", err)
	}

	s.Notify(storage.KindCategory)
	return nil
}
