// Package resources - состояние загрузки данных для потребителей API:
// разовые загрузки (Resource) и живые подписки (Live).
package resources

import (
	"context"
	"fmt"
	"sync"
)

// State - снимок состояния ресурса. Пока идёт первая загрузка Loading == true.
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

type Loader[T any] func(ctx context.Context) (T, error)

// Resource хранит результат одного загрузчика. Кеша между экземплярами нет,
// одновременные Load не склеиваются: каждый вызов идёт в сервис.
type Resource[T any] struct {
	mu    sync.RWMutex
	load  Loader[T]
	state State[T]
}

func New[T any](load Loader[T]) *Resource[T] {
	return &Resource[T]{load: load, state: State[T]{Loading: true}}
}

// Load выполняет загрузку и возвращает итоговое состояние. При ошибке
// прежние данные сбрасываются.
func (r *Resource[T]) Load(ctx context.Context) State[T] {
	r.mu.Lock()
	r.state.Loading = true
	r.mu.Unlock()

	data, err := r.call(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		var zero T
		r.state = State[T]{Data: zero, Err: err}
	} else {
		r.state = State[T]{Data: data}
	}
	return r.state
}

// Refetch - повторная загрузка по запросу потребителя.
func (r *Resource[T]) Refetch(ctx context.Context) State[T] {
	return r.Load(ctx)
}

func (r *Resource[T]) State() State[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// call превращает панику загрузчика в ошибку состояния.
func (r *Resource[T]) call(ctx context.Context) (data T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("загрузка ресурса завершилась паникой: %v", p)
		}
	}()
	return r.load(ctx)
}
