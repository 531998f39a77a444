package repositories

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"

	"go.uber.org/zap"
)

var WorkCenterAllowedFields = db.AllowedFields{
	"name":        db.Text("name"),
	"code":        db.Text("code"),
	"tag":         db.Text("tag"),
	"costPerHour": db.Number("costPerHour"),
	"capacity":    db.Number("capacity"),
	"oeeTarget":   db.Number("oeeTarget"),
	"createdAt":   db.Text("createdAt"),
}

type WorkCenterRepositoryInterface interface {
	GetWorkCenters(ctx context.Context, q docstore.Query) ([]entities.WorkCenter, uint64, error)
	FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, data docstore.Fields) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, id string, patch docstore.Fields) (*entities.WorkCenter, error)
	DeleteWorkCenter(ctx context.Context, id string) error
	SubscribeWorkCenters(ctx context.Context, q docstore.Query, fn func([]entities.WorkCenter, error)) (docstore.Unsubscribe, error)
	SubscribeWorkCenter(ctx context.Context, id string, fn func(*entities.WorkCenter, error)) (docstore.Unsubscribe, error)
}

type WorkCenterRepository struct {
	baseRepository[entities.WorkCenter]
}

func NewWorkCenterRepository(store docstore.Store, subs *docstore.Subscriptions, logger *zap.Logger) WorkCenterRepositoryInterface {
	return &WorkCenterRepository{
		baseRepository: newBaseRepository[entities.WorkCenter](constants.CollectionWorkCenter, store, subs, logger),
	}
}

func (r *WorkCenterRepository) GetWorkCenters(ctx context.Context, q docstore.Query) ([]entities.WorkCenter, uint64, error) {
	return r.list(ctx, q)
}

func (r *WorkCenterRepository) FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error) {
	return r.find(ctx, id)
}

func (r *WorkCenterRepository) CreateWorkCenter(ctx context.Context, data docstore.Fields) (*entities.WorkCenter, error) {
	return r.create(ctx, data)
}

func (r *WorkCenterRepository) UpdateWorkCenter(ctx context.Context, id string, patch docstore.Fields) (*entities.WorkCenter, error) {
	return r.update(ctx, id, patch)
}

func (r *WorkCenterRepository) DeleteWorkCenter(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *WorkCenterRepository) SubscribeWorkCenters(ctx context.Context, q docstore.Query, fn func([]entities.WorkCenter, error)) (docstore.Unsubscribe, error) {
	return r.subscribe(ctx, q, fn)
}

func (r *WorkCenterRepository) SubscribeWorkCenter(ctx context.Context, id string, fn func(*entities.WorkCenter, error)) (docstore.Unsubscribe, error) {
	return r.subscribeOne(ctx, id, fn)
}
