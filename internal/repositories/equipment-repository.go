package repositories

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"

	"go.uber.org/zap"
)

// EquipmentAllowedFields - поля, доступные для filter[...] и sort[...].
var EquipmentAllowedFields = db.AllowedFields{
	"status":       db.Text("status"),
	"categoryId":   db.Text("categoryId"),
	"teamId":       db.Text("teamId"),
	"workCenterId": db.Text("workCenterId"),
	"department":   db.Text("department"),
	"technicianId": db.Text("technicianId"),
	"name":         db.Text("name"),
	"serialNumber": db.Text("serialNumber"),
	"purchaseDate": db.Text("purchaseDate"),
	"createdAt":    db.Text("createdAt"),
	"updatedAt":    db.Text("updatedAt"),
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, q docstore.Query) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, data docstore.Fields) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, patch docstore.Fields) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
	SubscribeEquipments(ctx context.Context, q docstore.Query, fn func([]entities.Equipment, error)) (docstore.Unsubscribe, error)
	SubscribeEquipment(ctx context.Context, id string, fn func(*entities.Equipment, error)) (docstore.Unsubscribe, error)
}

type EquipmentRepository struct {
	baseRepository[entities.Equipment]
}

func NewEquipmentRepository(store docstore.Store, subs *docstore.Subscriptions, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		baseRepository: newBaseRepository[entities.Equipment](constants.CollectionEquipment, store, subs, logger),
	}
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, q docstore.Query) ([]entities.Equipment, uint64, error) {
	return r.list(ctx, q)
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	return r.find(ctx, id)
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, data docstore.Fields) (*entities.Equipment, error) {
	return r.create(ctx, data)
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id string, patch docstore.Fields) (*entities.Equipment, error) {
	return r.update(ctx, id, patch)
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *EquipmentRepository) SubscribeEquipments(ctx context.Context, q docstore.Query, fn func([]entities.Equipment, error)) (docstore.Unsubscribe, error) {
	return r.subscribe(ctx, q, fn)
}

func (r *EquipmentRepository) SubscribeEquipment(ctx context.Context, id string, fn func(*entities.Equipment, error)) (docstore.Unsubscribe, error) {
	return r.subscribeOne(ctx, id, fn)
}
