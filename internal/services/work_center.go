package services

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/filters"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type WorkCenterServiceInterface interface {
	GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error)
	FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, id string, payload dto.UpdateWorkCenterDTO, rawBody []byte) (*entities.WorkCenter, error)
	DeleteWorkCenter(ctx context.Context, id string) error
	SubscribeWorkCenters(ctx context.Context, q docstore.Query, fn func([]entities.WorkCenter, error)) (docstore.Unsubscribe, error)
	SubscribeWorkCenter(ctx context.Context, id string, fn func(*entities.WorkCenter, error)) (docstore.Unsubscribe, error)
}

type WorkCenterService struct {
	workCenterRepository repositories.WorkCenterRepositoryInterface
	logger               *zap.Logger
}

func NewWorkCenterService(workCenterRepository repositories.WorkCenterRepositoryInterface, logger *zap.Logger) WorkCenterServiceInterface {
	return &WorkCenterService{workCenterRepository: workCenterRepository, logger: logger}
}

func (s *WorkCenterService) GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error) {
	q, local, err := listQuery(filter, repositories.WorkCenterAllowedFields, filter.Search != "")
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.workCenterRepository.GetWorkCenters(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if filter.Search == "" {
		return items, total, nil
	}
	items, total = pageLocally(filters.Apply(items, filters.WorkCenterSearch(filter.Search)), filter, local)
	return items, total, nil
}

func (s *WorkCenterService) FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error) {
	return s.workCenterRepository.FindWorkCenter(ctx, id)
}

// CreateWorkCenter генерирует код из названия, если он не передан.
func (s *WorkCenterService) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	code := payload.Code
	if code == "" {
		code = utils.GenerateCodeFromName(payload.Name)
	}
	data := docstore.Fields{"name": payload.Name}
	setIfNotEmpty(data, "code", code)
	setIfNotEmpty(data, "tag", payload.Tag)
	for key, value := range map[string]*float64{
		"costPerHour":    payload.CostPerHour,
		"capacity":       payload.Capacity,
		"timeEfficiency": payload.TimeEfficiency,
		"oeeTarget":      payload.OEETarget,
	} {
		if value != nil {
			data[key] = *value
		}
	}

	workCenter, err := s.workCenterRepository.CreateWorkCenter(ctx, data)
	if err != nil {
		s.logger.Error("Ошибка при создании рабочего центра", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Рабочий центр создан", zap.String("id", workCenter.ID), zap.String("code", workCenter.Code))
	return workCenter, nil
}

func (s *WorkCenterService) UpdateWorkCenter(ctx context.Context, id string, payload dto.UpdateWorkCenterDTO, rawBody []byte) (*entities.WorkCenter, error) {
	patch, err := utils.BuildPatch(payload, rawBody)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("некорректное тело запроса: %v", err)
	}
	if err := rejectCleared(patch, "name"); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.workCenterRepository.FindWorkCenter(ctx, id)
	}
	return s.workCenterRepository.UpdateWorkCenter(ctx, id, patch)
}

func (s *WorkCenterService) DeleteWorkCenter(ctx context.Context, id string) error {
	return s.workCenterRepository.DeleteWorkCenter(ctx, id)
}

func (s *WorkCenterService) SubscribeWorkCenters(ctx context.Context, q docstore.Query, fn func([]entities.WorkCenter, error)) (docstore.Unsubscribe, error) {
	return s.workCenterRepository.SubscribeWorkCenters(ctx, q, fn)
}

func (s *WorkCenterService) SubscribeWorkCenter(ctx context.Context, id string, fn func(*entities.WorkCenter, error)) (docstore.Unsubscribe, error) {
	return s.workCenterRepository.SubscribeWorkCenter(ctx, id, fn)
}
