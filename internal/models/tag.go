package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a user-assigned label shared across transactions. Names are unique
// and always lowercased before lookup or creation. Tags are created lazily
// on first reference and never mutated or deleted afterwards, even when no
// transaction references them anymore.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Transactions []Transaction `gorm:"many2many:transaction_tags" json:"-"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return t.Validate()
}

func (t *Tag) Validate() error {
	if t.Name == "" {
		return errors.New("tag name is required")
	}
	if t.Name != strings.ToLower(t.Name) {
		return errors.New("tag name must be lowercase")
	}
	if len(t.Name) > 50 {
		return errors.New("tag name too long")
	}
	return nil
}

func (t *Tag) TableName() string {
	return "tags"
}
