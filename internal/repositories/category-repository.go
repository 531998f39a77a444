package repositories

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"

	"go.uber.org/zap"
)

var CategoryAllowedFields = db.AllowedFields{
	"name":        db.Text("name"),
	"responsible": db.Text("responsible"),
	"createdAt":   db.Text("createdAt"),
}

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, q docstore.Query) ([]entities.EquipmentCategory, uint64, error)
	FindCategory(ctx context.Context, id string) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, data docstore.Fields) (*entities.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, id string, patch docstore.Fields) (*entities.EquipmentCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	SubscribeCategories(ctx context.Context, q docstore.Query, fn func([]entities.EquipmentCategory, error)) (docstore.Unsubscribe, error)
	SubscribeCategory(ctx context.Context, id string, fn func(*entities.EquipmentCategory, error)) (docstore.Unsubscribe, error)
}

type CategoryRepository struct {
	baseRepository[entities.EquipmentCategory]
}

func NewCategoryRepository(store docstore.Store, subs *docstore.Subscriptions, logger *zap.Logger) CategoryRepositoryInterface {
	return &CategoryRepository{
		baseRepository: newBaseRepository[entities.EquipmentCategory](constants.CollectionCategories, store, subs, logger),
	}
}

func (r *CategoryRepository) GetCategories(ctx context.Context, q docstore.Query) ([]entities.EquipmentCategory, uint64, error) {
	return r.list(ctx, q)
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id string) (*entities.EquipmentCategory, error) {
	return r.find(ctx, id)
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, data docstore.Fields) (*entities.EquipmentCategory, error) {
	return r.create(ctx, data)
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, id string, patch docstore.Fields) (*entities.EquipmentCategory, error) {
	return r.update(ctx, id, patch)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *CategoryRepository) SubscribeCategories(ctx context.Context, q docstore.Query, fn func([]entities.EquipmentCategory, error)) (docstore.Unsubscribe, error) {
	return r.subscribe(ctx, q, fn)
}

func (r *CategoryRepository) SubscribeCategory(ctx context.Context, id string, fn func(*entities.EquipmentCategory, error)) (docstore.Unsubscribe, error) {
	return r.subscribeOne(ctx, id, fn)
}
