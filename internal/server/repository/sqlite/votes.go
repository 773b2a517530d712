package sqlite

import (
	"context"

	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

// UpsertVote inserts a new vote or overwrites an existing one for the same
// (content, user) pair. An existing vote keeps its original id even though the
// caller burned a fresh one from the sequence.
func (r *Repository) UpsertVote(ctx context.Context, v models.Vote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO votes(id, content_id, user_id, name, score, comment, like_count, date)
		VALUES(?,?,?,?,?,?,?,?)
		ON CONFLICT(content_id, user_id) DO UPDATE SET
			name = excluded.name,
			score = excluded.score,
			comment = excluded.comment,
			like_count = excluded.like_count,
			date = excluded.date`,
		v.ID, v.ContentID, v.UserID, v.Name, v.Score, v.Comment, v.Like, v.Date)
	return err
}

// UpdateVote edits an existing vote addressed by (id, user). A miss is not an
// error; the caller reports success either way, matching the edit endpoint's
// historical behavior.
func (r *Repository) UpdateVote(ctx context.Context, v models.Vote) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE votes SET content_id = ?, name = ?, score = ?, comment = ?, like_count = ?, date = ?
		WHERE id = ? AND user_id = ?`,
		v.ContentID, v.Name, v.Score, v.Comment, v.Like, v.Date, v.ID, v.UserID)
	return err
}

func (r *Repository) ListVotes(ctx context.Context) ([]models.Vote, error) {
	return r.queryVotes(ctx, `SELECT id, content_id, user_id, name, score, comment, like_count, date FROM votes ORDER BY id`)
}

func (r *Repository) ListVotesByContent(ctx context.Context, contentID int64) ([]models.Vote, error) {
	return r.queryVotes(ctx, `SELECT id, content_id, user_id, name, score, comment, like_count, date FROM votes WHERE content_id = ? ORDER BY id`, contentID)
}

func (r *Repository) queryVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.ContentID, &v.UserID, &v.Name, &v.Score, &v.Comment, &v.Like, &v.Date); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Likes are purely additive; the same user liking the same vote twice simply
// appends another row.
func (r *Repository) InsertLike(ctx context.Context, userID string, voteID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO likes(user_id, vote_id) VALUES(?,?)`, userID, voteID)
	return err
}

func (r *Repository) IncrementVoteLike(ctx context.Context, voteID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE votes SET like_count = like_count + 1 WHERE id = ?`, voteID)
	return err
}

func (r *Repository) DeleteLikesByVote(ctx context.Context, voteID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE vote_id = ?`, voteID)
	return err
}

func (r *Repository) ListLikesByUser(ctx context.Context, userID string) ([]models.Like, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, vote_id FROM likes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Like
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.UserID, &l.VoteID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
