package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntry is the single-table relational rendition of the key-value contract.
// Values are JSON documents, so the column type lets the database index or
// inspect them if operators ever need to.
type kvEntry struct {
	Key   string         `gorm:"column:key;primaryKey;size:255"`
	Value datatypes.JSON `gorm:"column:value"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// GormStore backs the Store contract with a relational database through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := kvEntry{Key: key, Value: datatypes.JSON(value)}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (g *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := g.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (g *GormStore) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Delete(&kvEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (g *GormStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := g.db.WithContext(ctx).
		Model(&kvEntry{}).
		Where("key LIKE ?", prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("kv keys %s*: %w", prefix, err)
	}
	return keys, nil
}
