package store

import (
	"context"
	"time"

	"leadapi/internal/domain"
)

const (
	LeadListDefault = 50
	leadListMax     = 100
)

type LeadStore struct{ s *Store }

func (s *Store) Leads() *LeadStore { return &LeadStore{s: s} }

// Create appends a lead. ID and CreatedAt are server-assigned.
func (ls *LeadStore) Create(ctx context.Context, lead *domain.Lead) error {
	lead.ID = 0
	lead.CreatedAt = time.Now().UTC()
	return ls.s.DB.WithContext(ctx).Create(lead).Error
}

// List returns leads newest first. limit is clamped to [1,100]; values <= 0
// fall back to the default of 50.
func (ls *LeadStore) List(ctx context.Context, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = LeadListDefault
	}
	if limit > leadListMax {
		limit = leadListMax
	}
	var leads []domain.Lead
	err := ls.s.DB.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}
