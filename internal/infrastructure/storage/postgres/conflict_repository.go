package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/conflict"
)

// ConflictRepository — хранилище конфликтов синхронизации
type ConflictRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewConflictRepository создает репозиторий конфликтов
func NewConflictRepository(pool *pgxpool.Pool, log *slog.Logger) *ConflictRepository {
	return &ConflictRepository{
		pool: pool,
		log:  log.With("component", "conflict_repository"),
	}
}

func (r *ConflictRepository) Create(ctx context.Context, c *conflict.SyncConflict) (int64, error) {
	const query = `
		INSERT INTO sync_conflicts
			(batch_id, entity_type, entity_id, hq_timestamp, store_timestamp, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		c.BatchID, c.EntityType, c.EntityID,
		c.HQTimestamp, c.StoreTimestamp, c.CreatedAt,
	).Scan(&c.ID)

	if err != nil {
		r.log.Error("failed to create conflict",
			"batch_id", c.BatchID, "entity_id", c.EntityID, "error", err)
		return 0, fmt.Errorf("create conflict: %w", err)
	}

	return c.ID, nil
}

func (r *ConflictRepository) GetByID(ctx context.Context, id int64) (*conflict.SyncConflict, error) {
	const query = `
		SELECT id, batch_id, entity_type, entity_id, hq_timestamp, store_timestamp,
		       is_resolved, COALESCE(winner, ''), COALESCE(resolution_notes, ''),
		       COALESCE(resolved_by, ''), resolved_at, created_at
		FROM sync_conflicts
		WHERE id = $1`

	return r.scanConflict(r.pool.QueryRow(ctx, query, id))
}

// MarkResolved применяет разрешение только к неразрешенному конфликту:
// UPDATE с условием is_resolved = false исключает повторное разрешение
func (r *ConflictRepository) MarkResolved(ctx context.Context, id int64, winner conflict.Winner, notes, resolvedBy string, at time.Time) (bool, error) {
	const query = `
		UPDATE sync_conflicts
		SET is_resolved = true, winner = $2, resolution_notes = $3,
		    resolved_by = $4, resolved_at = $5
		WHERE id = $1 AND NOT is_resolved`

	tag, err := r.pool.Exec(ctx, query, id, winner, notes, resolvedBy, at)
	if err != nil {
		r.log.Error("failed to resolve conflict", "conflict_id", id, "error", err)
		return false, fmt.Errorf("mark conflict resolved: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ConflictRepository) ListUnresolved(ctx context.Context) ([]conflict.SyncConflict, error) {
	const query = `
		SELECT id, batch_id, entity_type, entity_id, hq_timestamp, store_timestamp,
		       is_resolved, COALESCE(winner, ''), COALESCE(resolution_notes, ''),
		       COALESCE(resolved_by, ''), resolved_at, created_at
		FROM sync_conflicts
		WHERE NOT is_resolved
		ORDER BY created_at`

	return r.queryConflicts(ctx, query)
}

func (r *ConflictRepository) ListUnresolvedByBatch(ctx context.Context, batchID int64) ([]conflict.SyncConflict, error) {
	const query = `
		SELECT id, batch_id, entity_type, entity_id, hq_timestamp, store_timestamp,
		       is_resolved, COALESCE(winner, ''), COALESCE(resolution_notes, ''),
		       COALESCE(resolved_by, ''), resolved_at, created_at
		FROM sync_conflicts
		WHERE NOT is_resolved AND batch_id = $1
		ORDER BY created_at`

	return r.queryConflicts(ctx, query, batchID)
}

// CountUnresolvedByStore считает неразрешенные конфликты магазина
// через связь конфликт → пакет
func (r *ConflictRepository) CountUnresolvedByStore(ctx context.Context, storeID int64) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM sync_conflicts c
		JOIN sync_batches b ON b.id = c.batch_id
		WHERE NOT c.is_resolved AND b.store_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unresolved conflicts: %w", err)
	}

	return count, nil
}

func (r *ConflictRepository) queryConflicts(ctx context.Context, query string, args ...any) ([]conflict.SyncConflict, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list conflicts", "error", err)
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []conflict.SyncConflict
	for rows.Next() {
		c, err := r.scanConflict(rows)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, *c)
	}

	return conflicts, rows.Err()
}

func (r *ConflictRepository) scanConflict(row pgx.Row) (*conflict.SyncConflict, error) {
	var c conflict.SyncConflict

	err := row.Scan(
		&c.ID, &c.BatchID, &c.EntityType, &c.EntityID,
		&c.HQTimestamp, &c.StoreTimestamp, &c.IsResolved,
		&c.Winner, &c.ResolutionNotes, &c.ResolvedBy,
		&c.ResolvedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, conflict.ErrConflictNotFound
		}
		return nil, fmt.Errorf("scan conflict: %w", err)
	}

	return &c, nil
}
