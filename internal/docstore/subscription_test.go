package docstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func waitForSnapshot(t *testing.T, ch <-chan []Document, want int) []Document {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case docs := <-ch:
			if len(docs) == want {
				return docs
			}
		case <-deadline:
			t.Fatalf("не дождались снимка из %d документов", want)
			return nil
		}
	}
}

func TestSubscriptions_CollectionSnapshots(t *testing.T) {
	leakOpts := goleak.IgnoreCurrent()
	ctx := context.Background()
	logger := zap.NewNop()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, MigrateSQLite(ctx, db, logger))
	base := NewSQLiteStore(db, Options{Clock: clockwork.NewFakeClock()})

	broker := NewBroker(logger)
	store := NewNotifyingStore(base, broker, nil, logger)
	subs := NewSubscriptions(store, broker, logger)

	snapshots := make(chan []Document, 16)
	unsubscribe, err := subs.Subscribe(ctx, "equipment", Where("status", OpEqual, "maintenance"), func(docs []Document, err error) {
		assert.NoError(t, err)
		snapshots <- docs
	})
	require.NoError(t, err)
	assert.Equal(t, 1, broker.ListenerCount("equipment"))

	waitForSnapshot(t, snapshots, 0)

	pump, err := store.Create(ctx, "equipment", Fields{"name": "Pump A", "status": "maintenance"})
	require.NoError(t, err)
	docs := waitForSnapshot(t, snapshots, 1)
	assert.Equal(t, pump.ID, docs[0].ID)

	_, err = store.Create(ctx, "equipment", Fields{"name": "Lathe", "status": "active"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "equipment", Fields{"name": "Press", "status": "maintenance"})
	require.NoError(t, err)
	docs = waitForSnapshot(t, snapshots, 2)
	assert.Equal(t, "Pump A", docs[0].Data["name"])
	assert.Equal(t, "Press", docs[1].Data["name"])

	_, err = store.Update(ctx, "equipment", pump.ID, Fields{"status": "active"})
	require.NoError(t, err)
	waitForSnapshot(t, snapshots, 1)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, broker.ListenerCount("equipment"))

	require.NoError(t, store.Close())
	goleak.VerifyNone(t, leakOpts)
}

func TestSubscriptions_Document(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	base := newTestStore(t, clockwork.NewFakeClock())
	broker := NewBroker(logger)
	store := NewNotifyingStore(base, broker, nil, logger)
	subs := NewSubscriptions(store, broker, logger)

	team, err := store.Create(ctx, "teams", Fields{"name": "Electricians"})
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		names []string
	)
	deleted := make(chan struct{})
	seen := make(chan struct{}, 16)
	unsubscribe, err := subs.SubscribeDoc(ctx, "teams", team.ID, func(doc *Document, err error) {
		assert.NoError(t, err)
		if doc == nil {
			close(deleted)
			return
		}
		mu.Lock()
		names = append(names, doc.Data["name"].(string))
		mu.Unlock()
		seen <- struct{}{}
	})
	require.NoError(t, err)
	defer unsubscribe()

	<-seen
	_, err = store.Create(ctx, "teams", Fields{"name": "Other"})
	require.NoError(t, err)
	_, err = store.Update(ctx, "teams", team.ID, Fields{"name": "Electrical crew"})
	require.NoError(t, err)
	<-seen
	require.NoError(t, store.Delete(ctx, "teams", team.ID))

	select {
	case <-deleted:
	case <-time.After(2 * time.Second):
		t.Fatal("не получили уведомление об удалении")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Electricians", "Electrical crew"}, names)
}

func TestSubscriptions_StopsWithContext(t *testing.T) {
	logger := zap.NewNop()
	store := newTestStore(t, clockwork.NewFakeClock())
	broker := NewBroker(logger)
	subs := NewSubscriptions(store, broker, logger)

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 4)
	_, err := subs.Subscribe(ctx, "equipment", Query{}, func([]Document, error) { calls <- struct{}{} })
	require.NoError(t, err)
	<-calls

	cancel()
	assert.Eventually(t, func() bool { return broker.ListenerCount("equipment") == 0 }, 2*time.Second, 10*time.Millisecond)
}

type recordingRelay struct {
	mu        sync.Mutex
	published []Change
	incoming  chan Change
}

func (r *recordingRelay) Publish(_ context.Context, change Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, change)
	return nil
}

func (r *recordingRelay) Run(ctx context.Context, deliver func(Change)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-r.incoming:
			deliver(c)
		}
	}
}

func (r *recordingRelay) Close() error { return nil }

func TestBroker_RelaySkipsOwnOrigin(t *testing.T) {
	logger := zap.NewNop()
	broker := NewBroker(logger)
	relay := &recordingRelay{incoming: make(chan Change)}
	store := NewNotifyingStore(newTestStore(t, clockwork.NewFakeClock()), broker, relay, logger)

	received := make(chan Change, 4)
	stop := broker.listen("equipment", func(c Change) { received <- c })
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = broker.RunRelay(ctx, relay) }()

	doc, err := store.Create(context.Background(), "equipment", Fields{"name": "Pump"})
	require.NoError(t, err)
	local := <-received
	assert.Equal(t, ChangeCreated, local.Kind)
	assert.Equal(t, doc.ID, local.ID)

	relay.mu.Lock()
	require.Len(t, relay.published, 1)
	assert.Equal(t, broker.Origin(), relay.published[0].Origin)
	relay.mu.Unlock()

	relay.incoming <- Change{Collection: "equipment", ID: doc.ID, Kind: ChangeUpdated, Origin: broker.Origin()}
	relay.incoming <- Change{Collection: "equipment", ID: "remote", Kind: ChangeDeleted, Origin: "other-instance"}

	remote := <-received
	assert.Equal(t, "remote", remote.ID)
	assert.Empty(t, received)
}
