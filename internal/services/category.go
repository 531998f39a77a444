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

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error)
	FindCategory(ctx context.Context, id string) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO, rawBody []byte) (*entities.EquipmentCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	SubscribeCategories(ctx context.Context, q docstore.Query, fn func([]entities.EquipmentCategory, error)) (docstore.Unsubscribe, error)
	SubscribeCategory(ctx context.Context, id string, fn func(*entities.EquipmentCategory, error)) (docstore.Unsubscribe, error)
}

type CategoryService struct {
	categoryRepository repositories.CategoryRepositoryInterface
	logger             *zap.Logger
}

func NewCategoryService(categoryRepository repositories.CategoryRepositoryInterface, logger *zap.Logger) CategoryServiceInterface {
	return &CategoryService{categoryRepository: categoryRepository, logger: logger}
}

func (s *CategoryService) GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error) {
	q, local, err := listQuery(filter, repositories.CategoryAllowedFields, filter.Search != "")
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.categoryRepository.GetCategories(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if filter.Search == "" {
		return items, total, nil
	}
	items, total = pageLocally(filters.Apply(items, filters.CategorySearch(filter.Search)), filter, local)
	return items, total, nil
}

func (s *CategoryService) FindCategory(ctx context.Context, id string) (*entities.EquipmentCategory, error) {
	return s.categoryRepository.FindCategory(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error) {
	data := docstore.Fields{"name": payload.Name}
	setIfNotEmpty(data, "description", payload.Description)
	setIfNotEmpty(data, "responsible", payload.Responsible)

	category, err := s.categoryRepository.CreateCategory(ctx, data)
	if err != nil {
		s.logger.Error("Ошибка при создании категории", zap.Error(err))
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO, rawBody []byte) (*entities.EquipmentCategory, error) {
	patch, err := utils.BuildPatch(payload, rawBody)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("некорректное тело запроса: %v", err)
	}
	if err := rejectCleared(patch, "name"); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.categoryRepository.FindCategory(ctx, id)
	}
	return s.categoryRepository.UpdateCategory(ctx, id, patch)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.categoryRepository.DeleteCategory(ctx, id)
}

func (s *CategoryService) SubscribeCategories(ctx context.Context, q docstore.Query, fn func([]entities.EquipmentCategory, error)) (docstore.Unsubscribe, error) {
	return s.categoryRepository.SubscribeCategories(ctx, q, fn)
}

func (s *CategoryService) SubscribeCategory(ctx context.Context, id string, fn func(*entities.EquipmentCategory, error)) (docstore.Unsubscribe, error) {
	return s.categoryRepository.SubscribeCategory(ctx, id, fn)
}
