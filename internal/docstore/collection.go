package docstore

import (
	"context"
)

// Collection - типизированный доступ к одной коллекции.
type Collection[T any] struct {
	name  string
	store Store
	subs  *Subscriptions
}

func NewCollection[T any](name string, store Store, subs *Subscriptions) *Collection[T] {
	return &Collection[T]{name: name, store: store, subs: subs}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) List(ctx context.Context, q Query) ([]T, error) {
	docs, err := c.store.Query(ctx, c.name, q)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](docs)
}

func (c *Collection[T]) Count(ctx context.Context, q Query) (uint64, error) {
	return c.store.Count(ctx, c.name, q)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return decodePtr[T](doc)
}

func (c *Collection[T]) Add(ctx context.Context, data Fields) (*T, error) {
	doc, err := c.store.Create(ctx, c.name, data)
	if err != nil {
		return nil, err
	}
	return decodePtr[T](doc)
}

func (c *Collection[T]) Update(ctx context.Context, id string, patch Fields) (*T, error) {
	doc, err := c.store.Update(ctx, c.name, id, patch)
	if err != nil {
		return nil, err
	}
	return decodePtr[T](doc)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) Subscribe(ctx context.Context, q Query, fn func([]T, error)) (Unsubscribe, error) {
	if c.subs == nil {
		return nil, ErrNotConfigured
	}
	return c.subs.Subscribe(ctx, c.name, q, func(docs []Document, err error) {
		if err != nil {
			fn(nil, err)
			return
		}
		fn(DecodeAll[T](docs))
	})
}

func (c *Collection[T]) SubscribeDoc(ctx context.Context, id string, fn func(*T, error)) (Unsubscribe, error) {
	if c.subs == nil {
		return nil, ErrNotConfigured
	}
	return c.subs.SubscribeDoc(ctx, c.name, id, func(doc *Document, err error) {
		if err != nil || doc == nil {
			fn(nil, err)
			return
		}
		fn(decodePtr[T](doc))
	})
}

func decodePtr[T any](doc *Document) (*T, error) {
	item, err := Decode[T](*doc)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
