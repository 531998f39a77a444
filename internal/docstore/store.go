package docstore

import (
	"context"
	"fmt"

	apperrors "gearguard/pkg/errors"

	"github.com/jonboulle/clockwork"
)

var (
	ErrNotFound      = apperrors.ErrNotFound
	ErrNotConfigured = apperrors.ErrNotConfigured
	ErrInvalidQuery  = fmt.Errorf("некорректный запрос к хранилищу")
)

// Store - обобщённый доступ к коллекциям документов. Ошибки бэкенда
// возвращаются вызывающему как есть: без повторов и без кеша.
type Store interface {
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Count(ctx context.Context, collection string, q Query) (uint64, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Create(ctx context.Context, collection string, data Fields) (*Document, error)
	Update(ctx context.Context, collection, id string, patch Fields) (*Document, error)
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

type Options struct {
	Clock clockwork.Clock
}

func (o Options) clock() clockwork.Clock {
	if o.Clock == nil {
		return clockwork.NewRealClock()
	}
	return o.Clock
}

func checkTarget(collection string, ids ...string) error {
	if err := ValidateCollection(collection); err != nil {
		return err
	}
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: пустой идентификатор документа", ErrInvalidQuery)
		}
	}
	return nil
}
