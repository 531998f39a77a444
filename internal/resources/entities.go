package resources

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	"gearguard/pkg/types"
)

// Сервисы передаются узкими интерфейсами, чтобы пакет не зависел от services.

type EquipmentLister interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
}

type EquipmentFinder interface {
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
}

type TeamLister interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error)
}

type MaintenanceRequestLister interface {
	GetMaintenanceRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
}

type CategoryLister interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error)
}

type WorkCenterLister interface {
	GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error)
}

func listLoader[T any](filter types.Filter, list func(context.Context, types.Filter) ([]T, uint64, error)) Loader[[]T] {
	return func(ctx context.Context) ([]T, error) {
		items, _, err := list(ctx, filter)
		return items, err
	}
}

func Equipment(svc EquipmentLister, filter types.Filter) *Resource[[]entities.Equipment] {
	return New(listLoader(filter, svc.GetEquipments))
}

func EquipmentItem(svc EquipmentFinder, id string) *Resource[*entities.Equipment] {
	return New(func(ctx context.Context) (*entities.Equipment, error) {
		return svc.FindEquipment(ctx, id)
	})
}

func Teams(svc TeamLister, filter types.Filter) *Resource[[]entities.Team] {
	return New(listLoader(filter, svc.GetTeams))
}

func MaintenanceRequests(svc MaintenanceRequestLister, filter types.Filter) *Resource[[]entities.MaintenanceRequest] {
	return New(listLoader(filter, svc.GetMaintenanceRequests))
}

func Categories(svc CategoryLister, filter types.Filter) *Resource[[]entities.EquipmentCategory] {
	return New(listLoader(filter, svc.GetCategories))
}

func WorkCenters(svc WorkCenterLister, filter types.Filter) *Resource[[]entities.WorkCenter] {
	return New(listLoader(filter, svc.GetWorkCenters))
}

// WatchList - живой список коллекции по запросу.
func WatchList[T any](
	ctx context.Context,
	subscribe func(context.Context, docstore.Query, func([]T, error)) (docstore.Unsubscribe, error),
	q docstore.Query,
) *Live[[]T] {
	return Watch(ctx, func(ctx context.Context, fn func([]T, error)) (docstore.Unsubscribe, error) {
		return subscribe(ctx, q, fn)
	})
}

// WatchItem - живой документ; после удаления Data == nil.
func WatchItem[T any](
	ctx context.Context,
	subscribe func(context.Context, string, func(*T, error)) (docstore.Unsubscribe, error),
	id string,
) *Live[*T] {
	return Watch(ctx, func(ctx context.Context, fn func(*T, error)) (docstore.Unsubscribe, error) {
		return subscribe(ctx, id, fn)
	})
}
