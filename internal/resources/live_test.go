package resources_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearguard/internal/docstore"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/internal/resources"
	apperrors "gearguard/pkg/errors"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func waitState[T any](t *testing.T, live *resources.Live[T], ok func(resources.State[T]) bool) resources.State[T] {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if state := live.State(); ok(state) {
			return state
		}
		select {
		case <-live.Changes():
		case <-deadline:
			t.Fatalf("не дождались состояния, последнее: %+v", live.State())
		}
	}
}

func TestWatch_SubscribeError(t *testing.T) {
	live := resources.Watch(context.Background(), func(ctx context.Context, fn func([]string, error)) (docstore.Unsubscribe, error) {
		return nil, errors.New("no backend")
	})
	defer live.Close()

	state := live.State()
	assert.False(t, state.Loading)
	assert.EqualError(t, state.Err, "no backend")
	live.Close()
}

func TestWatchList_FollowsStore(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx := context.Background()
	logger := zap.NewNop()
	db, err := docstore.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, docstore.MigrateSQLite(ctx, db, logger))
	base := docstore.NewSQLiteStore(db, docstore.Options{Clock: clockwork.NewFakeClock()})
	defer base.Close()

	broker := docstore.NewBroker(logger)
	store := docstore.NewNotifyingStore(base, broker, nil, logger)
	subs := docstore.NewSubscriptions(store, broker, logger)
	repo := repositories.NewEquipmentRepository(store, subs, logger)

	live := resources.WatchList(ctx, repo.SubscribeEquipments, docstore.Where("status", docstore.OpEqual, "maintenance"))
	waitState(t, live, func(s resources.State[[]entities.Equipment]) bool { return !s.Loading })

	created, err := repo.CreateEquipment(ctx, docstore.Fields{"name": "Pump A", "serialNumber": "SN-1", "status": "maintenance"})
	require.NoError(t, err)
	state := waitState(t, live, func(s resources.State[[]entities.Equipment]) bool { return len(s.Data) == 1 })
	assert.Equal(t, created.ID, state.Data[0].ID)

	item := resources.WatchItem(ctx, repo.SubscribeEquipment, created.ID)
	waitState(t, item, func(s resources.State[*entities.Equipment]) bool { return s.Data != nil })

	require.NoError(t, repo.DeleteEquipment(ctx, created.ID))
	waitState(t, live, func(s resources.State[[]entities.Equipment]) bool { return !s.Loading && len(s.Data) == 0 })
	waitState(t, item, func(s resources.State[*entities.Equipment]) bool { return s.Data == nil && !s.Loading })

	live.Close()
	item.Close()
	assert.Zero(t, broker.ListenerCount("equipment"))
}

func TestWatchList_Unconfigured(t *testing.T) {
	logger := zap.NewNop()
	store := docstore.Unconfigured{}
	subs := docstore.NewSubscriptions(store, docstore.NewBroker(logger), logger)
	repo := repositories.NewTeamRepository(store, subs, logger)

	live := resources.WatchList(context.Background(), repo.SubscribeTeams, docstore.Query{})
	defer live.Close()

	state := waitState(t, live, func(s resources.State[[]entities.Team]) bool { return !s.Loading })
	assert.ErrorIs(t, state.Err, apperrors.ErrNotConfigured)
}
