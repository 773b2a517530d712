package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

const contentColumns = `id, content_type, title, publisher, description, download_url, image_url, date, download_count, vote_average_score, difficulties, has_lua`

func (r *Repository) InsertContent(ctx context.Context, c models.Content) error {
	diffs, _ := json.Marshal(c.SongInfo.Difficulties)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contents(`+contentColumns+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.ContentType, c.Title, c.Publisher, c.Description, c.DownloadURL, c.ImageURL,
		c.Date, c.DownloadCount, c.VoteAverageScore, string(diffs), c.SongInfo.HasLua)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

func (r *Repository) GetContent(ctx context.Context, id int64) (models.Content, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM contents WHERE id = ?`, id)
	c, err := scanContent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Content{}, repository.ErrNotFound
	}
	return c, err
}

func (r *Repository) ListContents(ctx context.Context) ([]models.Content, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+contentColumns+` FROM contents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Content
	for rows.Next() {
		c, err := scanContent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) IncrementDownloadCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contents SET download_count = download_count + 1 WHERE id = ?`, id)
	return err
}

func (r *Repository) SetVoteAverageScore(ctx context.Context, id int64, avg float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contents SET vote_average_score = ? WHERE id = ?`, avg, id)
	return err
}

func scanContent(scan func(...any) error) (models.Content, error) {
	var c models.Content
	var diffs string
	if err := scan(&c.ID, &c.ContentType, &c.Title, &c.Publisher, &c.Description, &c.DownloadURL, &c.ImageURL,
		&c.Date, &c.DownloadCount, &c.VoteAverageScore, &diffs, &c.SongInfo.HasLua); err != nil {
		return models.Content{}, err
	}
	if diffs != "" {
		_ = json.Unmarshal([]byte(diffs), &c.SongInfo.Difficulties)
	}
	return c, nil
}
