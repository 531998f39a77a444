package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/docstore"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/filters"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type MaintenanceRequestServiceInterface interface {
	GetMaintenanceRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
	FindMaintenanceRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error)
	CreateMaintenanceRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error)
	UpdateMaintenanceRequest(ctx context.Context, id string, payload dto.UpdateMaintenanceRequestDTO, rawBody []byte) (*entities.MaintenanceRequest, error)
	ChangeStage(ctx context.Context, id string, status string) (*entities.MaintenanceRequest, error)
	DeleteMaintenanceRequest(ctx context.Context, id string) error
	GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequest, error)
	SubscribeMaintenanceRequests(ctx context.Context, q docstore.Query, fn func([]entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error)
	SubscribeMaintenanceRequest(ctx context.Context, id string, fn func(*entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error)
}

type MaintenanceRequestService struct {
	requestRepository   repositories.MaintenanceRequestRepositoryInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
	bus                 *eventbus.Bus
	clock               clockwork.Clock
	logger              *zap.Logger
}

func NewMaintenanceRequestService(
	requestRepository repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	bus *eventbus.Bus,
	clock clockwork.Clock,
	logger *zap.Logger,
) MaintenanceRequestServiceInterface {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MaintenanceRequestService{
		requestRepository:   requestRepository,
		equipmentRepository: equipmentRepository,
		bus:                 bus,
		clock:               clock,
		logger:              logger,
	}
}

// GetMaintenanceRequests поддерживает, кроме обычных фильтров, filter[overdue]=true.
func (s *MaintenanceRequestService) GetMaintenanceRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	overdue := false
	if v, ok := filter.Filter["overdue"]; ok {
		overdue = strings.EqualFold(fmt.Sprint(v), "true")
	}
	clientSide := filter.Search != "" || overdue

	q, local, err := listQuery(filter, repositories.MaintenanceRequestAllowedFields, clientSide)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.requestRepository.GetMaintenanceRequests(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if !clientSide {
		return items, total, nil
	}

	preds := []filters.Predicate[entities.MaintenanceRequest]{filters.RequestSearch(filter.Search)}
	if overdue {
		preds = append(preds, filters.OverdueRequests(s.clock.Now()))
	}
	items, total = pageLocally(filters.Apply(items, preds...), filter, local)
	return items, total, nil
}

func (s *MaintenanceRequestService) FindMaintenanceRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error) {
	return s.requestRepository.FindMaintenanceRequest(ctx, id)
}

// CreateMaintenanceRequest подставляет команду и техника из карточки
// оборудования, если они не указаны явно.
func (s *MaintenanceRequestService) CreateMaintenanceRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("оборудование %s не найдено", payload.EquipmentID)
		}
		return nil, err
	}

	data := docstore.Fields{
		"subject":     payload.Subject,
		"equipmentId": payload.EquipmentID,
		"status":      constants.RequestStatusNew,
		"priority":    constants.PriorityMedium,
		"requestType": constants.RequestTypeCorrective,
	}
	if payload.Status != "" {
		data["status"] = payload.Status
	}
	if payload.Priority != "" {
		data["priority"] = payload.Priority
	}
	if payload.RequestType != "" {
		data["requestType"] = payload.RequestType
	}
	setIfNotEmpty(data, "description", payload.Description)
	setIfNotEmpty(data, "teamId", firstNonEmpty(payload.TeamID, equipment.TeamID))
	setIfNotEmpty(data, "technicianId", firstNonEmpty(payload.TechnicianID, equipment.TechnicianID))
	if payload.ScheduledDate != nil {
		data["scheduledDate"] = *payload.ScheduledDate
	}
	if payload.DurationHours != nil {
		data["durationHours"] = *payload.DurationHours
	}
	if constants.IsClosedRequestStatus(data["status"].(string)) {
		data["completedAt"] = docstore.ServerTimestamp
	}

	request, err := s.requestRepository.CreateMaintenanceRequest(ctx, data)
	if err != nil {
		s.logger.Error("Ошибка при создании заявки", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Заявка создана", zap.String("id", request.ID), zap.String("equipmentId", request.EquipmentID))
	s.afterStageChange(ctx, request)
	return request, nil
}

func (s *MaintenanceRequestService) UpdateMaintenanceRequest(ctx context.Context, id string, payload dto.UpdateMaintenanceRequestDTO, rawBody []byte) (*entities.MaintenanceRequest, error) {
	patch, err := utils.BuildPatch(payload, rawBody)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("некорректное тело запроса: %v", err)
	}
	if err := rejectCleared(patch, "subject", "equipmentId", "priority"); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.requestRepository.FindMaintenanceRequest(ctx, id)
	}
	if equipmentID, ok := patch["equipmentId"].(string); ok {
		if _, err := s.equipmentRepository.FindEquipment(ctx, equipmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewInvalidInputError("оборудование %s не найдено", equipmentID)
			}
			return nil, err
		}
	}
	return s.requestRepository.UpdateMaintenanceRequest(ctx, id, patch)
}

// ChangeStage переводит заявку на этап канбан-доски. Завершающие этапы
// проставляют completedAt, возврат в работу его очищает.
func (s *MaintenanceRequestService) ChangeStage(ctx context.Context, id string, status string) (*entities.MaintenanceRequest, error) {
	patch := docstore.Fields{"status": status}
	if constants.IsClosedRequestStatus(status) {
		patch["completedAt"] = docstore.ServerTimestamp
	} else {
		patch["completedAt"] = docstore.Delete
	}

	request, err := s.requestRepository.UpdateMaintenanceRequest(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Этап заявки изменён", zap.String("id", id), zap.String("status", status))
	s.afterStageChange(ctx, request)
	return request, nil
}

func (s *MaintenanceRequestService) afterStageChange(ctx context.Context, request *entities.MaintenanceRequest) {
	if request.Status != constants.RequestStatusScrap || s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.RequestScrappedEvent{RequestID: request.ID, EquipmentID: request.EquipmentID})
}

func (s *MaintenanceRequestService) DeleteMaintenanceRequest(ctx context.Context, id string) error {
	return s.requestRepository.DeleteMaintenanceRequest(ctx, id)
}

// GetOverdueRequests - открытые заявки с прошедшей плановой датой.
func (s *MaintenanceRequestService) GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	now := s.clock.Now()
	q := docstore.Where("scheduledDate", docstore.OpLess, now).OrderBy("scheduledDate", false)
	items, _, err := s.requestRepository.GetMaintenanceRequests(ctx, q)
	if err != nil {
		return nil, err
	}
	return filters.Apply(items, filters.OverdueRequests(now)), nil
}

func (s *MaintenanceRequestService) SubscribeMaintenanceRequests(ctx context.Context, q docstore.Query, fn func([]entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error) {
	return s.requestRepository.SubscribeMaintenanceRequests(ctx, q, fn)
}

func (s *MaintenanceRequestService) SubscribeMaintenanceRequest(ctx context.Context, id string, fn func(*entities.MaintenanceRequest, error)) (docstore.Unsubscribe, error) {
	return s.requestRepository.SubscribeMaintenanceRequest(ctx, id, fn)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
