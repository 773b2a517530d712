package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; a second connection attempting a write
	// surfaces as SQLITE_BUSY, so serialize everything on one connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			account_id TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			token TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			icon INTEGER NOT NULL DEFAULT 0,
			banned INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS ranking (
			song_title TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			chart_hash TEXT NOT NULL,
			account_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			ab_count INTEGER NOT NULL,
			date TEXT NOT NULL,
			PRIMARY KEY(song_title, difficulty, chart_hash, account_id)
		);
		CREATE INDEX IF NOT EXISTS idx_ranking_chart ON ranking(chart_hash, difficulty);
		CREATE TABLE IF NOT EXISTS contents (
			id INTEGER PRIMARY KEY,
			content_type INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			download_url TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			download_count INTEGER NOT NULL DEFAULT 0,
			vote_average_score REAL NOT NULL DEFAULT 0,
			difficulties TEXT NOT NULL DEFAULT '[]',
			has_lua INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS votes (
			id INTEGER NOT NULL UNIQUE,
			content_id INTEGER NOT NULL,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			score REAL NOT NULL DEFAULT 0,
			comment TEXT NOT NULL DEFAULT '',
			like_count INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			PRIMARY KEY(content_id, user_id)
		);
		CREATE TABLE IF NOT EXISTS likes (
			user_id TEXT NOT NULL,
			vote_id INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			seq INTEGER NOT NULL DEFAULT 0
		);
	`); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// NextSequence hands out the next value of the named counter. The increment
// and the read happen in one statement, so concurrent callers never observe
// the same value.
func (r *Repository) NextSequence(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO counters(name, seq) VALUES(?, 1)
		ON CONFLICT(name) DO UPDATE SET seq = seq + 1
		RETURNING seq
	`, name).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}
