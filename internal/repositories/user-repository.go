package repositories

import (
	"context"
	"strings"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	"go.uber.org/zap"
)

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id string) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
}

type UserRepository struct {
	baseRepository[entities.User]
}

func NewUserRepository(store docstore.Store, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{
		baseRepository: newBaseRepository[entities.User](constants.CollectionUsers, store, nil, logger),
	}
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := r.find(ctx, id)
	if err != nil {
		if apperrors.IsNotConfigured(err) {
			return nil, err
		}
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// FindUserByEmail ищет без учёта регистра: адреса сохраняются в нижнем регистре.
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	q := docstore.Where("email", docstore.OpEqual, strings.ToLower(strings.TrimSpace(email))).WithLimit(1)
	users, _, err := r.list(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return &users[0], nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	data := docstore.Fields{
		"email":        strings.ToLower(strings.TrimSpace(user.Email)),
		"passwordHash": user.PasswordHash,
	}
	if user.DisplayName != "" {
		data["displayName"] = user.DisplayName
	}
	return r.create(ctx, data)
}
