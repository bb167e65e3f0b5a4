package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/store"
)

// StoreRepository — доступ к реестру магазинов
type StoreRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewStoreRepository создает репозиторий магазинов
func NewStoreRepository(pool *pgxpool.Pool, log *slog.Logger) *StoreRepository {
	return &StoreRepository{
		pool: pool,
		log:  log.With("component", "store_repository"),
	}
}

func (r *StoreRepository) List(ctx context.Context) ([]store.Store, error) {
	const query = `
		SELECT id, name, code, is_active, created_at
		FROM stores
		WHERE is_active
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list stores", "error", err)
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []store.Store
	for rows.Next() {
		var st store.Store
		if err := rows.Scan(&st.ID, &st.Name, &st.Code, &st.IsActive, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, st)
	}

	return stores, rows.Err()
}

func (r *StoreRepository) GetByID(ctx context.Context, id int64) (*store.Store, error) {
	const query = `
		SELECT id, name, code, is_active, created_at
		FROM stores
		WHERE id = $1`

	var st store.Store
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.Name, &st.Code, &st.IsActive, &st.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}

	return &st, nil
}

func (r *StoreRepository) Add(ctx context.Context, st *store.Store) (int64, error) {
	const query = `
		INSERT INTO stores (name, code, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, st.Name, st.Code, st.IsActive, st.CreatedAt).Scan(&st.ID)
	if err != nil {
		r.log.Error("failed to add store", "name", st.Name, "error", err)
		return 0, fmt.Errorf("add store: %w", err)
	}

	return st.ID, nil
}

func (r *StoreRepository) Update(ctx context.Context, st *store.Store) error {
	const query = `
		UPDATE stores
		SET name = $2, code = $3, is_active = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, st.ID, st.Name, st.Code, st.IsActive)
	if err != nil {
		r.log.Error("failed to update store", "store_id", st.ID, "error", err)
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrStoreNotFound
	}

	return nil
}
