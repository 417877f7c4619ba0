package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
)

type Store struct {
	DB *gorm.DB

	// DefaultEmail is the external fallback used by Routes().Resolve when
	// neither a rule nor the stored default_email setting matches.
	DefaultEmail string
}

func New(db *gorm.DB, defaultEmail string) *Store {
	return &Store{DB: db, DefaultEmail: defaultEmail}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx, DefaultEmail: s.DefaultEmail})
	})
}

// translate maps gorm errors to store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
