package memstore

import (
	"context"
	"strings"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

func (r *repo) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	defer r.lock()()
	u, ok := r.db().users[userID]
	if !ok || u.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *repo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.lock()()
	return r.userByEmail(email)
}

func (r *repo) userByEmail(email string) (*domain.User, error) {
	for _, u := range r.db().users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *repo) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.lock()()
	for _, u := range r.db().users {
		if u.DeletedAt == nil && u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *repo) SaveUser(ctx context.Context, user domain.User) error {
	defer r.lock()()
	for _, u := range r.db().users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return apperrors.NewConflictError("User with this email or username already exists")
		}
	}
	user.Email = strings.ToLower(user.Email)
	r.db().users[user.UserID] = user
	return nil
}
