package resources

import (
	"context"
	"sync"

	"gearguard/internal/docstore"
)

type SubscribeFunc[T any] func(ctx context.Context, fn func(T, error)) (docstore.Unsubscribe, error)

// Live держит состояние актуальным по подписке до вызова Close.
type Live[T any] struct {
	mu          sync.RWMutex
	state       State[T]
	changes     chan struct{}
	unsubscribe docstore.Unsubscribe
	closeOnce   sync.Once
}

// Watch открывает подписку. Ошибка открытия не возвращается, а попадает
// в состояние, как и ошибки последующих снимков.
func Watch[T any](ctx context.Context, subscribe SubscribeFunc[T]) *Live[T] {
	l := &Live[T]{
		state:   State[T]{Loading: true},
		changes: make(chan struct{}, 1),
	}

	unsubscribe, err := subscribe(ctx, l.update)
	if err != nil {
		l.update(*new(T), err)
		return l
	}

	l.mu.Lock()
	l.unsubscribe = unsubscribe
	l.mu.Unlock()
	return l
}

func (l *Live[T]) update(data T, err error) {
	l.mu.Lock()
	if err != nil {
		var zero T
		l.state = State[T]{Data: zero, Err: err}
	} else {
		l.state = State[T]{Data: data}
	}
	l.mu.Unlock()

	select {
	case l.changes <- struct{}{}:
	default:
	}
}

func (l *Live[T]) State() State[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Changes сигналит о новом состоянии. Сигналы склеиваются: читатель
// всегда должен брать актуальное State().
func (l *Live[T]) Changes() <-chan struct{} {
	return l.changes
}

func (l *Live[T]) Close() {
	l.closeOnce.Do(func() {
		l.mu.RLock()
		unsubscribe := l.unsubscribe
		l.mu.RUnlock()
		if unsubscribe != nil {
			unsubscribe()
		}
	})
}
