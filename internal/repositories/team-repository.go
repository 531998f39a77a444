package repositories

import (
	"context"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"

	"go.uber.org/zap"
)

var TeamAllowedFields = db.AllowedFields{
	"name":      db.Text("name"),
	"createdAt": db.Text("createdAt"),
}

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, q docstore.Query) ([]entities.Team, uint64, error)
	FindTeam(ctx context.Context, id string) (*entities.Team, error)
	CreateTeam(ctx context.Context, data docstore.Fields) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id string, patch docstore.Fields) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	SubscribeTeams(ctx context.Context, q docstore.Query, fn func([]entities.Team, error)) (docstore.Unsubscribe, error)
	SubscribeTeam(ctx context.Context, id string, fn func(*entities.Team, error)) (docstore.Unsubscribe, error)
}

type TeamRepository struct {
	baseRepository[entities.Team]
}

func NewTeamRepository(store docstore.Store, subs *docstore.Subscriptions, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{
		baseRepository: newBaseRepository[entities.Team](constants.CollectionTeams, store, subs, logger),
	}
}

func (r *TeamRepository) GetTeams(ctx context.Context, q docstore.Query) ([]entities.Team, uint64, error) {
	return r.list(ctx, q)
}

func (r *TeamRepository) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	return r.find(ctx, id)
}

func (r *TeamRepository) CreateTeam(ctx context.Context, data docstore.Fields) (*entities.Team, error) {
	return r.create(ctx, data)
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, id string, patch docstore.Fields) (*entities.Team, error) {
	return r.update(ctx, id, patch)
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *TeamRepository) SubscribeTeams(ctx context.Context, q docstore.Query, fn func([]entities.Team, error)) (docstore.Unsubscribe, error) {
	return r.subscribe(ctx, q, fn)
}

func (r *TeamRepository) SubscribeTeam(ctx context.Context, id string, fn func(*entities.Team, error)) (docstore.Unsubscribe, error) {
	return r.subscribeOne(ctx, id, fn)
}
