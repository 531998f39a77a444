package docstore

import (
	"context"
	"fmt"
)

// Unconfigured подставляется, когда параметры хранилища не заданы.
// Все операции возвращают ErrNotConfigured с причиной.
type Unconfigured struct {
	Reason error
}

func (u Unconfigured) err() error {
	if u.Reason == nil {
		return ErrNotConfigured
	}
	return fmt.Errorf("%w: %v", ErrNotConfigured, u.Reason)
}

func (u Unconfigured) Query(context.Context, string, Query) ([]Document, error) {
	return nil, u.err()
}

func (u Unconfigured) Count(context.Context, string, Query) (uint64, error) {
	return 0, u.err()
}

func (u Unconfigured) Get(context.Context, string, string) (*Document, error) {
	return nil, u.err()
}

func (u Unconfigured) Create(context.Context, string, Fields) (*Document, error) {
	return nil, u.err()
}

func (u Unconfigured) Update(context.Context, string, string, Fields) (*Document, error) {
	return nil, u.err()
}

func (u Unconfigured) Delete(context.Context, string, string) error {
	return u.err()
}

func (u Unconfigured) Close() error { return nil }
