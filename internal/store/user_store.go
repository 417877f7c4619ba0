package store

import (
	"context"

	"leadapi/internal/domain"

	"github.com/google/uuid"
)

type UserStore struct{ s *Store }

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Create inserts a user row. The caller is responsible for lowercasing the
// username; uniqueness violations come back as ErrDuplicate.
func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return translate(u.s.DB.WithContext(ctx).Create(usr).Error)
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := u.s.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// DeleteByUsername removes the user and its password credential. Deleting a
// username that does not exist is not an error.
func (u *UserStore) DeleteByUsername(ctx context.Context, username string) error {
	return u.s.WithTx(ctx, func(tx *Store) error {
		var user domain.User
		if err := tx.DB.First(&user, "username = ?", username).Error; err != nil {
			if translate(err) == ErrRecordNotFound {
				return nil
			}
			return err
		}
		if err := tx.DB.Where("user_id = ?", user.ID).Delete(&domain.PasswordCredential{}).Error; err != nil {
			return err
		}
		return tx.DB.Delete(&user).Error
	})
}

// ListUsernames returns all usernames in alphabetical order.
func (u *UserStore) ListUsernames(ctx context.Context) ([]string, error) {
	var names []string
	err := u.s.DB.WithContext(ctx).
		Model(&domain.User{}).
		Order("username asc").
		Pluck("username", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
