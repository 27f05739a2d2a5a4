package repositories

import (
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
)

// tagRepository implements TagRepositoryInterface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepositoryInterface {
	return &tagRepository{
		db: db,
	}
}

// GetByName retrieves a tag by its exact (lowercase) name
func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("name = ?", strings.ToLower(name)).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// GetOrCreate looks up a tag by name and creates it when absent. A
// uniqueness violation on insert means a concurrent request created the tag
// between lookup and insert; the row is re-fetched instead of failing.
func (r *tagRepository) GetOrCreate(name string) (*models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("tag name is required")
	}

	tag, err := r.GetByName(name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, ErrTagNotFound) {
		return nil, err
	}

	newTag := &models.Tag{Name: name}
	if err := r.db.Create(newTag).Error; err != nil {
		if isUniqueViolation(err) {
			return r.GetByName(name)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return newTag, nil
}

// GetAll retrieves all tags ordered by name
func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
// gorm.ErrDuplicatedKey covers drivers with translated errors; the string
// checks cover the sqlite and postgres messages that predate translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
