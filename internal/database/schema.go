package database

import (
	"context"
	"fmt"
)

// CreateTables creates all necessary database tables
func (db *DB) CreateTables(ctx context.Context) error {
	postsTable := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		platform VARCHAR(50) NOT NULL,
		content TEXT NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'draft',
		date VARCHAR(10) NOT NULL,
		time VARCHAR(5),
		engagement INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
	CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date DESC);
	CREATE INDEX IF NOT EXISTS idx_posts_platform ON posts(platform);
	`

	analyticsTable := `
	CREATE TABLE IF NOT EXISTS analytics (
		id BIGSERIAL PRIMARY KEY,
		platform VARCHAR(50) NOT NULL,
		date VARCHAR(10) NOT NULL,
		engagement INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_analytics_platform ON analytics(platform);
	`

	tables := []string{postsTable, analyticsTable}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return nil
}
