package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

func (r *Repository) GetRankingEntry(ctx context.Context, songTitle string, difficulty int, chartHash, accountID string) (models.RankingEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT song_title, difficulty, chart_hash, account_id, score, ab_count, date
		FROM ranking
		WHERE song_title = ? AND difficulty = ? AND chart_hash = ? AND account_id = ?`,
		songTitle, difficulty, chartHash, accountID)
	var e models.RankingEntry
	if err := row.Scan(&e.SongTitle, &e.Difficulty, &e.ChartHash, &e.AccountID, &e.Score, &e.ABCount, &e.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RankingEntry{}, repository.ErrNotFound
		}
		return models.RankingEntry{}, err
	}
	return e, nil
}

// InsertRankingEntry creates the first entry for a chart/account identity.
// A concurrent create for the same identity loses with ErrConflict and should
// be retried as an update.
func (r *Repository) InsertRankingEntry(ctx context.Context, e models.RankingEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ranking(song_title, difficulty, chart_hash, account_id, score, ab_count, date)
		VALUES(?,?,?,?,?,?,?)`,
		e.SongTitle, e.Difficulty, e.ChartHash, e.AccountID, e.Score, e.ABCount, e.Date)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

// UpdateRankingEntryCAS writes the new score, ab_count and date only if the
// row still carries the values the caller read. Lost races report ErrConflict
// so the caller can re-read and retry instead of clobbering a concurrent
// submission.
func (r *Repository) UpdateRankingEntryCAS(ctx context.Context, e models.RankingEntry, prevScore, prevABCount int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ranking SET score = ?, ab_count = ?, date = ?
		WHERE song_title = ? AND difficulty = ? AND chart_hash = ? AND account_id = ?
		  AND score = ? AND ab_count = ?`,
		e.Score, e.ABCount, e.Date,
		e.SongTitle, e.Difficulty, e.ChartHash, e.AccountID,
		prevScore, prevABCount)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return repository.ErrConflict
	}
	return nil
}

// ListRanking returns entries for one chart variant, best score first, perfect
// clears breaking ties. The trailing account_id key keeps residual ties stable
// across calls.
func (r *Repository) ListRanking(ctx context.Context, chartHash string, difficulty, limit int) ([]models.RankingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT song_title, difficulty, chart_hash, account_id, score, ab_count, date
		FROM ranking
		WHERE chart_hash = ? AND difficulty = ?
		ORDER BY score DESC, ab_count DESC, account_id ASC
		LIMIT ?`,
		chartHash, difficulty, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.RankingEntry
	for rows.Next() {
		var e models.RankingEntry
		if err := rows.Scan(&e.SongTitle, &e.Difficulty, &e.ChartHash, &e.AccountID, &e.Score, &e.ABCount, &e.Date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
