package repositories

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"

	"go.uber.org/zap"
)

// MaintenanceRequestAllowedFields - поля, доступные для filter[...] и sort[...].
var MaintenanceRequestAllowedFields = db.AllowedFields{
	"status":        db.Text("status"),
	"priority":      db.Text("priority"),
	"requestType":   db.Text("requestType"),
	"equipmentId":   db.Text("equipmentId"),
	"teamId":        db.Text("teamId"),
	"technicianId":  db.Text("technicianId"),
	"subject":       db.Text("subject"),
	"scheduledDate": db.Text("scheduledDate"),
	"durationHours": db.Number("durationHours"),
	"completedAt":   db.Text("completedAt"),
	"createdAt":     db.Text("createdAt"),
	"updatedAt":     db.Text("updatedAt"),
}

type MaintenanceRequestRepositoryInterface interface {
	GetMaintenanceRequests(ctx context.Context, q docstore.Query) ([]entities.MaintenanceRequest, uint64, error)
	FindMaintenanceRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error)
	CreateMaintenanceRequest(ctx context.Context, data docstore.Fields) (*entities.MaintenanceRequest, error)
	UpdateMaintenanceRequest(ctx context.Context, id string, patch docstore.Fields) (*entities.MaintenanceRequest, error)
	DeleteMaintenanceRequest(ctx context.Context, id string) error
	SubscribeMaintenanceRequests(ctx context.Context, q docstore.Query, fn func([]entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error)
	SubscribeMaintenanceRequest(ctx context.Context, id string, fn func(*entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error)
}

type MaintenanceRequestRepository struct {
	baseRepository[entities.MaintenanceRequest]
}

func NewMaintenanceRequestRepository(store docstore.Store, subs *docstore.Subscriptions, logger *zap.Logger) MaintenanceRequestRepositoryInterface {
	return &MaintenanceRequestRepository{
		baseRepository: newBaseRepository[entities.MaintenanceRequest](constants.CollectionRequests, store, subs, logger),
	}
}

func (r *MaintenanceRequestRepository) GetMaintenanceRequests(ctx context.Context, q docstore.Query) ([]entities.MaintenanceRequest, uint64, error) {
	return r.list(ctx, q)
}

func (r *MaintenanceRequestRepository) FindMaintenanceRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error) {
	return r.find(ctx, id)
}

func (r *MaintenanceRequestRepository) CreateMaintenanceRequest(ctx context.Context, data docstore.Fields) (*entities.MaintenanceRequest, error) {
	return r.create(ctx, data)
}

func (r *MaintenanceRequestRepository) UpdateMaintenanceRequest(ctx context.Context, id string, patch docstore.Fields) (*entities.MaintenanceRequest, error) {
	return r.update(ctx, id, patch)
}

func (r *MaintenanceRequestRepository) DeleteMaintenanceRequest(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *MaintenanceRequestRepository) SubscribeMaintenanceRequests(ctx context.Context, q docstore.Query, fn func([]entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error) {
	return r.subscribe(ctx, q, fn)
}

func (r *MaintenanceRequestRepository) SubscribeMaintenanceRequest(ctx context.Context, id string, fn func(*entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error) {
	return r.subscribeOne(ctx, id, fn)
}
