package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/batch"
)

// BatchRepository — хранилище пакетов синхронизации и их записей
type BatchRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewBatchRepository создает репозиторий пакетов
func NewBatchRepository(pool *pgxpool.Pool, log *slog.Logger) *BatchRepository {
	return &BatchRepository{
		pool: pool,
		log:  log.With("component", "batch_repository"),
	}
}

func (r *BatchRepository) Create(ctx context.Context, b *batch.SyncBatch) (int64, error) {
	const query = `
		INSERT INTO sync_batches
			(store_id, entity_type, direction, status, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		b.StoreID, b.EntityType, b.Direction, b.Status, b.CreatedAt, b.IsActive,
	).Scan(&b.ID)

	if err != nil {
		r.log.Error("failed to create batch",
			"store_id", b.StoreID, "entity_type", b.EntityType, "error", err)
		return 0, fmt.Errorf("create batch: %w", err)
	}

	return b.ID, nil
}

func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*batch.SyncBatch, error) {
	const query = `
		SELECT id, store_id, entity_type, direction, status, created_at,
		       started_at, completed_at, total_records, success_records,
		       failed_records, error_message, is_active
		FROM sync_batches
		WHERE id = $1`

	var b batch.SyncBatch
	var errMsg *string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.StoreID, &b.EntityType, &b.Direction, &b.Status,
		&b.CreatedAt, &b.StartedAt, &b.CompletedAt, &b.TotalRecords,
		&b.SuccessRecords, &b.FailedRecords, &errMsg, &b.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, batch.ErrBatchNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	if errMsg != nil {
		b.ErrorMessage = *errMsg
	}

	return &b, nil
}

// UpdateStatus применяет переход статуса атомарно относительно
// конкурентных чтений: UPDATE выполняется с условием на текущий статус
func (r *BatchRepository) UpdateStatus(ctx context.Context, id int64, from, to batch.Status) (bool, error) {
	const query = `
		UPDATE sync_batches
		SET status = $3,
		    started_at = CASE WHEN $3 = 'in_progress' THEN now() ELSE started_at END
		WHERE id = $1 AND status = $2`

	tag, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("failed to update batch status",
			"batch_id", id, "from", from, "to", to, "error", err)
		return false, fmt.Errorf("update batch status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *BatchRepository) Finish(ctx context.Context, b *batch.SyncBatch) error {
	const query = `
		UPDATE sync_batches
		SET status = $2, completed_at = $3, total_records = $4,
		    success_records = $5, failed_records = $6, error_message = NULLIF($7, '')
		WHERE id = $1 AND status = 'in_progress'`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Status, b.CompletedAt, b.TotalRecords,
		b.SuccessRecords, b.FailedRecords, b.ErrorMessage,
	)
	if err != nil {
		r.log.Error("failed to finish batch", "batch_id", b.ID, "error", err)
		return fmt.Errorf("finish batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}

	return nil
}

func (r *BatchRepository) AddRecord(ctx context.Context, rec *batch.SyncRecord) (int64, error) {
	const query = `
		INSERT INTO sync_records
			(batch_id, entity_id, payload, record_timestamp, is_success, error_text, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		rec.BatchID, rec.EntityID, rec.Payload, rec.RecordTimestamp,
		rec.IsSuccess, rec.ErrorText, rec.CreatedAt,
	).Scan(&rec.ID)

	if err != nil {
		r.log.Error("failed to add sync record",
			"batch_id", rec.BatchID, "entity_id", rec.EntityID, "error", err)
		return 0, fmt.Errorf("add sync record: %w", err)
	}

	return rec.ID, nil
}

func (r *BatchRepository) ListRecords(ctx context.Context, batchID int64) ([]batch.SyncRecord, error) {
	const query = `
		SELECT id, batch_id, entity_id, payload, record_timestamp,
		       is_success, COALESCE(error_text, ''), created_at
		FROM sync_records
		WHERE batch_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		r.log.Error("failed to list sync records", "batch_id", batchID, "error", err)
		return nil, fmt.Errorf("list sync records: %w", err)
	}
	defer rows.Close()

	var records []batch.SyncRecord
	for rows.Next() {
		var rec batch.SyncRecord
		err := rows.Scan(
			&rec.ID, &rec.BatchID, &rec.EntityID, &rec.Payload,
			&rec.RecordTimestamp, &rec.IsSuccess, &rec.ErrorText, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sync record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *BatchRepository) DeactivateOld(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		UPDATE sync_batches
		SET is_active = false
		WHERE is_active
		  AND status IN ('completed', 'cancelled')
		  AND created_at < $1`

	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("failed to deactivate old batches", "error", err)
		return 0, fmt.Errorf("deactivate old batches: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountByStatus возвращает число пакетов магазина по статусам.
// Выборка идет по индексу (store_id, created_at), а не полным сканом.
func (r *BatchRepository) CountByStatus(ctx context.Context, storeID int64) (map[batch.Status]int, error) {
	const query = `
		SELECT status, COUNT(*)
		FROM sync_batches
		WHERE store_id = $1 AND is_active
		GROUP BY status`

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		r.log.Error("failed to count batches", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("count batches by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[batch.Status]int)
	for rows.Next() {
		var status batch.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan batch count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

// SumSuccessRecords возвращает общее число успешно синхронизированных
// записей магазина
func (r *BatchRepository) SumSuccessRecords(ctx context.Context, storeID int64) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(success_records), 0)
		FROM sync_batches
		WHERE store_id = $1 AND is_active`

	var total int64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum success records: %w", err)
	}

	return total, nil
}
