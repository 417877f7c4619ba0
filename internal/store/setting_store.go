package store

import (
	"context"
	"time"

	"leadapi/internal/domain"

	"gorm.io/gorm/clause"
)

type SettingStore struct{ s *Store }

func (s *Store) Settings() *SettingStore { return &SettingStore{s: s} }

func (ss *SettingStore) Get(ctx context.Context, key string) (string, error) {
	var setting domain.Setting
	if err := ss.s.DB.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return "", translate(err)
	}
	return setting.Value, nil
}

func (ss *SettingStore) Upsert(ctx context.Context, key, value string) error {
	setting := domain.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return ss.s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
