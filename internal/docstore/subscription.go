package docstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Unsubscribe останавливает подписку. Повторный вызов ничего не делает.
// После возврата новые вызовы callback не начинаются.
type Unsubscribe func()

// Subscriptions - живые слушатели коллекций и документов. Каждый callback
// получает полный пересчитанный результат, а не дельту.
type Subscriptions struct {
	store  Store
	broker *Broker
	logger *zap.Logger
}

func NewSubscriptions(store Store, broker *Broker, logger *zap.Logger) *Subscriptions {
	return &Subscriptions{store: store, broker: broker, logger: logger}
}

// Subscribe выдаёт начальный снимок и затем новый снимок после каждого
// изменения в коллекции. Серия изменений может склеиться в один снимок.
func (s *Subscriptions) Subscribe(ctx context.Context, collection string, q Query, fn func([]Document, error)) (Unsubscribe, error) {
	if err := checkTarget(collection); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	w := s.start(ctx, collection, func(Change) bool { return true }, func(runCtx context.Context, deliver func(func())) {
		docs, err := s.store.Query(runCtx, collection, q)
		if runCtx.Err() != nil {
			return
		}
		if err != nil {
			s.logger.Warn("Подписка: ошибка чтения коллекции", zap.String("collection", collection), zap.Error(err))
		}
		deliver(func() { fn(docs, err) })
	})
	return w.stop, nil
}

// SubscribeDoc следит за одним документом; после удаления callback
// получает nil без ошибки.
func (s *Subscriptions) SubscribeDoc(ctx context.Context, collection, id string, fn func(*Document, error)) (Unsubscribe, error) {
	if err := checkTarget(collection, id); err != nil {
		return nil, err
	}

	w := s.start(ctx, collection, func(c Change) bool { return c.ID == id }, func(runCtx context.Context, deliver func(func())) {
		doc, err := s.store.Get(runCtx, collection, id)
		if runCtx.Err() != nil {
			return
		}
		if errors.Is(err, ErrNotFound) {
			doc, err = nil, nil
		}
		deliver(func() { fn(doc, err) })
	})
	return w.stop, nil
}

type watch struct {
	signal   chan struct{}
	closed   atomic.Bool
	cancel   context.CancelFunc
	unlisten func()
	once     sync.Once
}

func (w *watch) stop() {
	w.once.Do(func() {
		w.closed.Store(true)
		w.unlisten()
		w.cancel()
	})
}

func (s *Subscriptions) start(
	ctx context.Context,
	collection string,
	match func(Change) bool,
	refresh func(runCtx context.Context, deliver func(func())),
) *watch {
	runCtx, cancel := context.WithCancel(ctx)
	w := &watch{
		signal: make(chan struct{}, 1),
		cancel: cancel,
	}
	w.unlisten = s.broker.listen(collection, func(c Change) {
		if !match(c) {
			return
		}
		select {
		case w.signal <- struct{}{}:
		default:
		}
	})
	w.signal <- struct{}{}

	deliver := func(call func()) {
		if w.closed.Load() {
			return
		}
		call()
	}

	go func() {
		defer w.stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-w.signal:
				refresh(runCtx, deliver)
			}
		}
	}()
	return w
}
