package store

import (
	"context"
	"errors"
)

var ErrStoreNotFound = errors.New("store not found")

// Repository — доступ к реестру магазинов. Используется только для
// разрешения отображаемых имен в ответах панелей мониторинга.
type Repository interface {
	List(ctx context.Context) ([]Store, error)
	GetByID(ctx context.Context, id int64) (*Store, error)
	Add(ctx context.Context, s *Store) (int64, error)
	Update(ctx context.Context, s *Store) error
}
