package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change - уведомление об изменении документа. Origin - инстанс,
// на котором произошла запись.
type Change struct {
	Collection string     `json:"collection"`
	ID         string     `json:"id"`
	Kind       ChangeKind `json:"kind"`
	Origin     string     `json:"origin"`
}

// Relay доставляет изменения между инстансами сервиса.
type Relay interface {
	Publish(ctx context.Context, change Change) error
	// Run блокируется до отмены ctx и передаёт входящие изменения в deliver.
	Run(ctx context.Context, deliver func(Change)) error
	Close() error
}

// Broker рассылает изменения подписчикам внутри процесса.
type Broker struct {
	origin string
	logger *zap.Logger

	mu        sync.RWMutex
	nextID    uint64
	listeners map[string]map[uint64]func(Change)
}

func NewBroker(logger *zap.Logger) *Broker {
	return &Broker{
		origin:    uuid.NewString(),
		logger:    logger,
		listeners: make(map[string]map[uint64]func(Change)),
	}
}

func (b *Broker) Origin() string { return b.origin }

// Publish вызывает слушателей синхронно: они не должны блокироваться.
func (b *Broker) Publish(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, listener := range b.listeners[change.Collection] {
		listener(change)
	}
}

func (b *Broker) listen(collection string, fn func(Change)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.listeners[collection] == nil {
		b.listeners[collection] = make(map[uint64]func(Change))
	}
	b.listeners[collection][id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners[collection], id)
			if len(b.listeners[collection]) == 0 {
				delete(b.listeners, collection)
			}
		})
	}
}

// ListenerCount нужен для проверки отписки.
func (b *Broker) ListenerCount(collection string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[collection])
}

// RunRelay передаёт изменения других инстансов локальным подписчикам.
// Собственные изменения уже доставлены через Publish и пропускаются.
func (b *Broker) RunRelay(ctx context.Context, relay Relay) error {
	b.logger.Info("Запуск ретранслятора изменений", zap.String("origin", b.origin))
	return relay.Run(ctx, func(change Change) {
		if change.Origin == b.origin {
			return
		}
		b.Publish(change)
	})
}

// NotifyingStore публикует изменения после каждой успешной записи.
type NotifyingStore struct {
	Store
	broker *Broker
	relay  Relay
	logger *zap.Logger
}

func NewNotifyingStore(store Store, broker *Broker, relay Relay, logger *zap.Logger) *NotifyingStore {
	return &NotifyingStore{Store: store, broker: broker, relay: relay, logger: logger}
}

func (s *NotifyingStore) Create(ctx context.Context, collection string, data Fields) (*Document, error) {
	doc, err := s.Store.Create(ctx, collection, data)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, collection, doc.ID, ChangeCreated)
	return doc, nil
}

func (s *NotifyingStore) Update(ctx context.Context, collection, id string, patch Fields) (*Document, error) {
	doc, err := s.Store.Update(ctx, collection, id, patch)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, collection, id, ChangeUpdated)
	return doc, nil
}

func (s *NotifyingStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.Store.Delete(ctx, collection, id); err != nil {
		return err
	}
	s.notify(ctx, collection, id, ChangeDeleted)
	return nil
}

func (s *NotifyingStore) notify(ctx context.Context, collection, id string, kind ChangeKind) {
	change := Change{Collection: collection, ID: id, Kind: kind, Origin: s.broker.Origin()}
	s.broker.Publish(change)
	if s.relay == nil {
		return
	}
	// Запись уже выполнена, поэтому сбой ретрансляции только логируем.
	if err := s.relay.Publish(ctx, change); err != nil {
		s.logger.Error("Не удалось отправить изменение в ретранслятор",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
