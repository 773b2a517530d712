package service

import (
	"context"
	"errors"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

// ContentService serves the content catalog. Plain CRUD; the interesting
// fields (downloadCount, voteAverageScore) are maintained by single atomic
// updates elsewhere.
type ContentService struct {
	repo Repository
}

func (s *ContentService) List(ctx context.Context) ([]models.ContentSummary, error) {
	contents, err := s.repo.ListContents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ContentSummary, 0, len(contents))
	for _, c := range contents {
		out = append(out, models.ContentSummary{
			ID:               c.ID,
			ContentType:      c.ContentType,
			Title:            c.Title,
			Publisher:        c.Publisher,
			Date:             c.Date,
			DownloadCount:    c.DownloadCount,
			VoteAverageScore: c.VoteAverageScore,
			SongInfo:         c.SongInfo,
		})
	}
	return out, nil
}

func (s *ContentService) Get(ctx context.Context, id int64) (models.Content, error) {
	return s.repo.GetContent(ctx, id)
}

// Description returns the detail fields only. A missing content is not an
// error here; the response simply carries empty fields.
func (s *ContentService) Description(ctx context.Context, id int64) (description, downloadURL, imageURL string, err error) {
	c, err := s.repo.GetContent(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "", "", "", nil
	}
	if err != nil {
		return "", "", "", err
	}
	return c.Description, c.DownloadURL, c.ImageURL, nil
}

func (s *ContentService) MarkDownloaded(ctx context.Context, id int64) error {
	return s.repo.IncrementDownloadCount(ctx, id)
}

func (s *ContentService) Add(ctx context.Context, c models.Content) error {
	return s.repo.InsertContent(ctx, c)
}
