package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/synclog"
)

// LogRepository — хранилище журнала операций синхронизации
type LogRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewLogRepository создает репозиторий журнала
func NewLogRepository(pool *pgxpool.Pool, log *slog.Logger) *LogRepository {
	return &LogRepository{
		pool: pool,
		log:  log.With("component", "log_repository"),
	}
}

func (r *LogRepository) Append(ctx context.Context, e *synclog.SyncLog) (int64, error) {
	const query = `
		INSERT INTO sync_logs
			(store_id, batch_id, operation, is_success, error_message, duration_ms, is_active, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		e.StoreID, e.BatchID, e.Operation, e.IsSuccess,
		e.ErrorMessage, e.DurationMs, e.IsActive, e.CreatedAt,
	).Scan(&e.ID)

	if err != nil {
		r.log.Error("failed to append sync log", "store_id", e.StoreID, "error", err)
		return 0, fmt.Errorf("append sync log: %w", err)
	}

	return e.ID, nil
}

// Query собирает условия WHERE из непустых полей фильтра
func (r *LogRepository) Query(ctx context.Context, f synclog.Filter) ([]synclog.SyncLog, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, store_id, batch_id, operation, is_success,
		       COALESCE(error_message, ''), duration_ms, is_active, created_at
		FROM sync_logs
		WHERE is_active`)

	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		sb.WriteString(" AND " + cond + "$" + strconv.Itoa(len(args)))
	}

	if f.StoreID != nil {
		add("store_id = ", *f.StoreID)
	}
	if f.IsSuccess != nil {
		add("is_success = ", *f.IsSuccess)
	}
	if f.From != nil {
		add("created_at >= ", *f.From)
	}
	if f.To != nil {
		add("created_at <= ", *f.To)
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("failed to query sync logs", "error", err)
		return nil, fmt.Errorf("query sync logs: %w", err)
	}
	defer rows.Close()

	var entries []synclog.SyncLog
	for rows.Next() {
		var e synclog.SyncLog
		err := rows.Scan(
			&e.ID, &e.StoreID, &e.BatchID, &e.Operation, &e.IsSuccess,
			&e.ErrorMessage, &e.DurationMs, &e.IsActive, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sync log: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *LogRepository) AvgDurationMs(ctx context.Context, storeID int64) (float64, error) {
	const query = `
		SELECT COALESCE(AVG(duration_ms), 0)
		FROM sync_logs
		WHERE store_id = $1 AND is_active`

	var avg float64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average log duration: %w", err)
	}

	return avg, nil
}

func (r *LogRepository) DeactivateOld(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		UPDATE sync_logs
		SET is_active = false
		WHERE is_active AND created_at < $1`

	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("failed to deactivate old sync logs", "error", err)
		return 0, fmt.Errorf("deactivate old sync logs: %w", err)
	}

	return tag.RowsAffected(), nil
}
