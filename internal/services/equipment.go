package services

import (
	"context"
	"fmt"

	"gearguard/internal/docstore"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/filters"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO, rawBody []byte) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
	GetEquipmentRequests(ctx context.Context, id string) ([]entities.MaintenanceRequest, error)
	MarkScrapped(ctx context.Context, id string) error
	SubscribeEquipments(ctx context.Context, q docstore.Query, fn func([]entities.Equipment, error)) (docstore.Unsubscribe, error)
	SubscribeEquipment(ctx context.Context, id string, fn func(*entities.Equipment, error)) (docstore.Unsubscribe, error)
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	requestRepository   repositories.MaintenanceRequestRepositoryInterface
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	requestRepository repositories.MaintenanceRequestRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		requestRepository:   requestRepository,
		logger:              logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	q, local, err := listQuery(filter, repositories.EquipmentAllowedFields, filter.Search != "")
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.equipmentRepository.GetEquipments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if filter.Search == "" {
		return items, total, nil
	}
	items, total = pageLocally(filters.Apply(items, filters.EquipmentSearch(filter.Search)), filter, local)
	return items, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	return s.equipmentRepository.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	if err := s.ensureSerialIsFree(ctx, payload.SerialNumber, ""); err != nil {
		return nil, err
	}

	data := docstore.Fields{
		"name":         payload.Name,
		"serialNumber": payload.SerialNumber,
		"status":       payload.Status,
		"purchaseDate": docstore.ServerTimestamp,
	}
	if payload.PurchaseDate != nil {
		data["purchaseDate"] = *payload.PurchaseDate
	}
	if payload.WarrantyExpiry != nil {
		data["warrantyExpiry"] = *payload.WarrantyExpiry
	}
	setIfNotEmpty(data, "categoryId", payload.CategoryID)
	setIfNotEmpty(data, "department", payload.Department)
	setIfNotEmpty(data, "location", payload.Location)
	setIfNotEmpty(data, "teamId", payload.TeamID)
	setIfNotEmpty(data, "technicianId", payload.TechnicianID)
	setIfNotEmpty(data, "assignedEmployee", payload.AssignedEmployee)
	setIfNotEmpty(data, "workCenterId", payload.WorkCenterID)
	setIfNotEmpty(data, "notes", payload.Notes)

	equipment, err := s.equipmentRepository.CreateEquipment(ctx, data)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Оборудование успешно создано", zap.String("id", equipment.ID), zap.String("serialNumber", equipment.SerialNumber))
	return equipment, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO, rawBody []byte) (*entities.Equipment, error) {
	patch, err := utils.BuildPatch(payload, rawBody)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("некорректное тело запроса: %v", err)
	}
	if err := rejectCleared(patch, "name", "serialNumber", "status"); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.equipmentRepository.FindEquipment(ctx, id)
	}
	if serial, ok := patch["serialNumber"].(string); ok {
		if err := s.ensureSerialIsFree(ctx, serial, id); err != nil {
			return nil, err
		}
	}

	equipment, err := s.equipmentRepository.UpdateEquipment(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Оборудование обновлено", zap.String("id", id), zap.Int("fields", len(patch)))
	return equipment, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	if err := s.equipmentRepository.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование удалено", zap.String("id", id))
	return nil
}

// GetEquipmentRequests - открытые заявки по единице оборудования
// (счётчик «Maintenance» на карточке).
func (s *EquipmentService) GetEquipmentRequests(ctx context.Context, id string) ([]entities.MaintenanceRequest, error) {
	if _, err := s.equipmentRepository.FindEquipment(ctx, id); err != nil {
		return nil, err
	}
	q := docstore.Where("equipmentId", docstore.OpEqual, id).OrderBy("createdAt", false)
	requests, _, err := s.requestRepository.GetMaintenanceRequests(ctx, q)
	if err != nil {
		return nil, err
	}
	return filters.Apply(requests, filters.OpenRequests()), nil
}

// MarkScrapped вызывается слушателем события списания заявки.
func (s *EquipmentService) MarkScrapped(ctx context.Context, id string) error {
	_, err := s.equipmentRepository.UpdateEquipment(ctx, id, docstore.Fields{"status": constants.EquipmentStatusScrapped})
	if err != nil {
		return err
	}
	s.logger.Info("Оборудование списано", zap.String("id", id))
	return nil
}

func (s *EquipmentService) SubscribeEquipments(ctx context.Context, q docstore.Query, fn func([]entities.Equipment, error)) (docstore.Unsubscribe, error) {
	return s.equipmentRepository.SubscribeEquipments(ctx, q, fn)
}

func (s *EquipmentService) SubscribeEquipment(ctx context.Context, id string, fn func(*entities.Equipment, error)) (docstore.Unsubscribe, error) {
	return s.equipmentRepository.SubscribeEquipment(ctx, id, fn)
}

func (s *EquipmentService) ensureSerialIsFree(ctx context.Context, serial, selfID string) error {
	q := docstore.Where("serialNumber", docstore.OpEqual, serial).WithLimit(2)
	existing, _, err := s.equipmentRepository.GetEquipments(ctx, q)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.ID != selfID {
			return fmt.Errorf("%w: оборудование с серийным номером %s", apperrors.ErrConflict, serial)
		}
	}
	return nil
}
