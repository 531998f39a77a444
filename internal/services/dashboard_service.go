package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/filters"
	"gearguard/internal/resources"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	equipment   EquipmentServiceInterface
	teams       TeamServiceInterface
	requests    MaintenanceRequestServiceInterface
	categories  CategoryServiceInterface
	workCenters WorkCenterServiceInterface
	clock       clockwork.Clock
	logger      *zap.Logger
}

func NewDashboardService(
	equipment EquipmentServiceInterface,
	teams TeamServiceInterface,
	requests MaintenanceRequestServiceInterface,
	categories CategoryServiceInterface,
	workCenters WorkCenterServiceInterface,
	clock clockwork.Clock,
	logger *zap.Logger,
) DashboardServiceInterface {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DashboardService{
		equipment:   equipment,
		teams:       teams,
		requests:    requests,
		categories:  categories,
		workCenters: workCenters,
		clock:       clock,
		logger:      logger,
	}
}

// GetDashboard загружает все пять разделов параллельно. Ошибка одного
// раздела не мешает остальным; если хранилище не настроено, возвращается
// ErrNotConfigured целиком.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	all := types.Filter{}
	equipment := resources.Equipment(s.equipment, all)
	teams := resources.Teams(s.teams, all)
	requests := resources.MaintenanceRequests(s.requests, all)
	categories := resources.Categories(s.categories, all)
	workCenters := resources.WorkCenters(s.workCenters, all)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { equipment.Load(gctx); return nil })
	g.Go(func() error { teams.Load(gctx); return nil })
	g.Go(func() error { requests.Load(gctx); return nil })
	g.Go(func() error { categories.Load(gctx); return nil })
	g.Go(func() error { workCenters.Load(gctx); return nil })
	_ = g.Wait()

	eq, rq := equipment.State(), requests.State()
	result := &dto.DashboardDTO{
		Equipment:   section(eq),
		Teams:       section(teams.State()),
		Requests:    section(rq),
		Categories:  section(categories.State()),
		WorkCenters: section(workCenters.State()),
		ByStatus:    map[string]int{},
	}

	if err := allNotConfigured(eq.Err, rq.Err, teams.State().Err, categories.State().Err, workCenters.State().Err); err != nil {
		return nil, err
	}

	for _, status := range constants.EquipmentStatuses {
		result.ByStatus[status] = 0
	}
	for _, e := range eq.Data {
		result.ByStatus[e.Status]++
	}

	if rq.Err == nil {
		open := filters.Apply(rq.Data, filters.OpenRequests())
		result.OpenRequests = len(open)
		result.OverdueRequests = len(filters.Apply(open, filters.OverdueRequests(s.clock.Now())))
		result.CriticalEquipment = countCriticalEquipment(open)
	}

	if eq.Err != nil || rq.Err != nil {
		s.logger.Warn("Панель собрана частично", zap.NamedError("equipment", eq.Err), zap.NamedError("requests", rq.Err))
	}
	return result, nil
}

func section[T any](state resources.State[[]T]) dto.DashboardSectionDTO {
	if state.Err != nil {
		return dto.DashboardSectionDTO{Error: state.Err.Error()}
	}
	return dto.DashboardSectionDTO{Count: len(state.Data), Items: state.Data}
}

func allNotConfigured(errs ...error) error {
	for _, err := range errs {
		if err == nil || !apperrors.IsNotConfigured(err) {
			return nil
		}
	}
	return apperrors.ErrNotConfigured
}

// countCriticalEquipment - единицы оборудования с открытой критичной заявкой.
func countCriticalEquipment(open []entities.MaintenanceRequest) int {
	seen := map[string]struct{}{}
	for _, r := range open {
		if r.Priority == constants.PriorityCritical {
			seen[r.EquipmentID] = struct{}{}
		}
	}
	return len(seen)
}
