package repositories

import (
	"context"

	"gearguard/internal/docstore"

	"go.uber.org/zap"
)

// baseRepository - общая часть сервисных модулей: фиксированная коллекция
// и серверные отметки createdAt/updatedAt.
type baseRepository[T any] struct {
	collection *docstore.Collection[T]
	logger     *zap.Logger
}

func newBaseRepository[T any](name string, store docstore.Store, subs *docstore.Subscriptions, logger *zap.Logger) baseRepository[T] {
	return baseRepository[T]{
		collection: docstore.NewCollection[T](name, store, subs),
		logger:     logger.With(zap.String("collection", name)),
	}
}

// list возвращает страницу и общее число документов под фильтрами.
func (r baseRepository[T]) list(ctx context.Context, q docstore.Query) ([]T, uint64, error) {
	items, err := r.collection.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if q.Limit == 0 && q.Offset == 0 {
		return items, uint64(len(items)), nil
	}
	total, err := r.collection.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r baseRepository[T]) find(ctx context.Context, id string) (*T, error) {
	return r.collection.Get(ctx, id)
}

func (r baseRepository[T]) create(ctx context.Context, data docstore.Fields) (*T, error) {
	fields := make(docstore.Fields, len(data)+2)
	for k, v := range data {
		fields[k] = v
	}
	fields["createdAt"] = docstore.ServerTimestamp
	fields["updatedAt"] = docstore.ServerTimestamp

	item, err := r.collection.Add(ctx, fields)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Документ создан")
	return item, nil
}

func (r baseRepository[T]) update(ctx context.Context, id string, patch docstore.Fields) (*T, error) {
	fields := make(docstore.Fields, len(patch)+1)
	for k, v := range patch {
		if k == "createdAt" {
			continue
		}
		fields[k] = v
	}
	fields["updatedAt"] = docstore.ServerTimestamp
	return r.collection.Update(ctx, id, fields)
}

func (r baseRepository[T]) delete(ctx context.Context, id string) error {
	return r.collection.Delete(ctx, id)
}

func (r baseRepository[T]) subscribe(ctx context.Context, q docstore.Query, fn func([]T, error)) (docstore.Unsubscribe, error) {
	return r.collection.Subscribe(ctx, q, fn)
}

func (r baseRepository[T]) subscribeOne(ctx context.Context, id string, fn func(*T, error)) (docstore.Unsubscribe, error) {
	return r.collection.SubscribeDoc(ctx, id, fn)
}
