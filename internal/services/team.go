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

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error)
	FindTeam(ctx context.Context, id string) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO, rawBody []byte) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	SubscribeTeams(ctx context.Context, q docstore.Query, fn func([]entities.Team, error)) (docstore.Unsubscribe, error)
	SubscribeTeam(ctx context.Context, id string, fn func(*entities.Team, error)) (docstore.Unsubscribe, error)
}

type TeamService struct {
	teamRepository repositories.TeamRepositoryInterface
	logger         *zap.Logger
}

func NewTeamService(teamRepository repositories.TeamRepositoryInterface, logger *zap.Logger) TeamServiceInterface {
	return &TeamService{teamRepository: teamRepository, logger: logger}
}

func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error) {
	q, local, err := listQuery(filter, repositories.TeamAllowedFields, filter.Search != "")
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.teamRepository.GetTeams(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if filter.Search == "" {
		return items, total, nil
	}
	items, total = pageLocally(filters.Apply(items, filters.TeamSearch(filter.Search)), filter, local)
	return items, total, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	return s.teamRepository.FindTeam(ctx, id)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	data := docstore.Fields{
		"name":    payload.Name,
		"members": []string{},
	}
	if len(payload.Members) > 0 {
		data["members"] = payload.Members
	}
	setIfNotEmpty(data, "description", payload.Description)

	team, err := s.teamRepository.CreateTeam(ctx, data)
	if err != nil {
		s.logger.Error("Ошибка при создании команды", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Команда создана", zap.String("id", team.ID), zap.String("name", team.Name))
	return team, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO, rawBody []byte) (*entities.Team, error) {
	patch, err := utils.BuildPatch(payload, rawBody)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("некорректное тело запроса: %v", err)
	}
	if err := rejectCleared(patch, "name"); err != nil {
		return nil, err
	}
	// Сброс состава храним как пустой список, а не как отсутствующее поле.
	if patch["members"] == docstore.Delete {
		patch["members"] = []string{}
	}
	if len(patch) == 0 {
		return s.teamRepository.FindTeam(ctx, id)
	}
	return s.teamRepository.UpdateTeam(ctx, id, patch)
}

// DeleteTeam не трогает оборудование, ссылающееся на команду.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	if err := s.teamRepository.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Команда удалена", zap.String("id", id))
	return nil
}

func (s *TeamService) SubscribeTeams(ctx context.Context, q docstore.Query, fn func([]entities.Team, error)) (docstore.Unsubscribe, error) {
	return s.teamRepository.SubscribeTeams(ctx, q, fn)
}

func (s *TeamService) SubscribeTeam(ctx context.Context, id string, fn func(*entities.Team, error)) (docstore.Unsubscribe, error) {
	return s.teamRepository.SubscribeTeam(ctx, id, fn)
}
