package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storesync/internal/domain/status"
)

// SQLiteCache хранит последние полученные с сервера сводки, чтобы
// показывать панель мониторинга при недоступном сервере
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	cache := &SQLiteCache{db: db}

	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return cache, nil
}

func (c *SQLiteCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			fetched_at DATETIME NOT NULL
		);
	`)

	return err
}

// SaveDashboard сохраняет сводку панели мониторинга
func (c *SQLiteCache) SaveDashboard(dash *status.ChainDashboard) error {
	return c.saveSnapshot("dashboard", dash)
}

// LoadDashboard возвращает последнюю сохраненную сводку и время ее получения
func (c *SQLiteCache) LoadDashboard() (*status.ChainDashboard, time.Time, error) {
	var dash status.ChainDashboard
	fetchedAt, err := c.loadSnapshot("dashboard", &dash)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &dash, fetchedAt, nil
}

// SaveChainStatistics сохраняет статистику сети
func (c *SQLiteCache) SaveChainStatistics(stats *status.ChainStatistics) error {
	return c.saveSnapshot("chain_statistics", stats)
}

// LoadChainStatistics возвращает последнюю сохраненную статистику сети
func (c *SQLiteCache) LoadChainStatistics() (*status.ChainStatistics, time.Time, error) {
	var stats status.ChainStatistics
	fetchedAt, err := c.loadSnapshot("chain_statistics", &stats)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &stats, fetchedAt, nil
}

func (c *SQLiteCache) saveSnapshot(key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO snapshots (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, key, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("ошибка сохранения снимка: %w", err)
	}

	return nil
}

func (c *SQLiteCache) loadSnapshot(key string, result interface{}) (time.Time, error) {
	var payload string
	var fetchedAt time.Time

	err := c.db.QueryRow(`
		SELECT payload, fetched_at FROM snapshots WHERE key = ?
	`, key).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("снимок не найден: %s", key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("ошибка чтения снимка: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), result); err != nil {
		return time.Time{}, fmt.Errorf("ошибка парсинга снимка: %w", err)
	}

	return fetchedAt, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
