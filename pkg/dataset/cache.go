package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCacheMiss 快照缓存中没有对应数据集
var ErrCacheMiss = errors.New("dataset snapshot not found")

// Cache 基于 SQLite 的数据集快照缓存
//
// 缓存的是清洗后的表快照，用于数据源不可达时的离线启动；
// 不承担会话状态的持久化。
type Cache struct {
	db     *sql.DB
	preset Preset
}

// NewCache 创建快照缓存
func NewCache(dbPath string, preset Preset) (*Cache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	c := &Cache{db: db, preset: preset}

	if err := c.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init cache schema: %w", err)
	}

	return c, nil
}

// initSchema 初始化表结构
func (c *Cache) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		rows TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	`

	_, err := c.db.Exec(query)
	return err
}

// Save 写入数据集快照（同名覆盖）
func (c *Cache) Save(ctx context.Context, table *Table) error {
	rows := make([]map[string]Value, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, row.Values)
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
	INSERT INTO snapshots (name, rows, row_count, fetched_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		rows = excluded.rows,
		row_count = excluded.row_count,
		fetched_at = excluded.fetched_at
	`

	_, err = c.db.ExecContext(ctx, query, c.preset.Name, string(payload), len(rows), time.Now().UnixMilli())
	return err
}

// Load 读取数据集快照并重建表
func (c *Cache) Load(ctx context.Context) (*Table, error) {
	query := `SELECT rows FROM snapshots WHERE name = ?`

	var payload string
	err := c.db.QueryRowContext(ctx, query, c.preset.Name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var values []map[string]Value
	if err := json.Unmarshal([]byte(payload), &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{Index: i, Values: v}
	}

	return &Table{Schema: c.preset.Schema, Rows: rows}, nil
}

// FetchedAt 返回快照的抓取时间
func (c *Cache) FetchedAt(ctx context.Context) (time.Time, error) {
	query := `SELECT fetched_at FROM snapshots WHERE name = ?`

	var ms int64
	err := c.db.QueryRowContext(ctx, query, c.preset.Name).Scan(&ms)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrCacheMiss
	}
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(ms), nil
}

// Close 关闭底层数据库连接
func (c *Cache) Close() error {
	return c.db.Close()
}
