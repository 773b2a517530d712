package service

import (
	"context"
	"log"
	"time"

	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

// voteIDCounter names the sequence that hands out vote identifiers.
const voteIDCounter = "voteId"

// VoteService stores per-user content ratings and keeps the content's average
// score in sync. Recomputes run detached from the triggering request and their
// failure never fails that request.
type VoteService struct {
	repo   Repository
	logger *log.Logger
}

// Cast registers or replaces the user's vote for a content. One vote per user
// per content; a recast overwrites the previous one.
func (s *VoteService) Cast(ctx context.Context, contentID int64, v models.Vote) error {
	if v.UserID == "" {
		return ErrMissingFields
	}
	v.ContentID = contentID
	id, err := s.repo.NextSequence(ctx, voteIDCounter)
	if err != nil {
		return err
	}
	v.ID = id
	if err := s.repo.UpsertVote(ctx, v); err != nil {
		return err
	}
	s.recomputeAsync(contentID)
	return nil
}

// Edit rewrites an existing vote addressed by (id, userId). Editing resets the
// vote's like counter and clears every like row pointing at it.
func (s *VoteService) Edit(ctx context.Context, contentID int64, v models.Vote) error {
	if v.ID == 0 || v.UserID == "" {
		return ErrMissingFields
	}
	v.ContentID = contentID
	v.Like = 0
	if err := s.repo.UpdateVote(ctx, v); err != nil {
		return err
	}
	if err := s.repo.DeleteLikesByVote(ctx, v.ID); err != nil {
		return err
	}
	s.recomputeAsync(contentID)
	return nil
}

func (s *VoteService) ListAll(ctx context.Context) ([]models.Vote, error) {
	return s.repo.ListVotes(ctx)
}

func (s *VoteService) ListByContent(ctx context.Context, contentID int64) ([]models.Vote, error) {
	return s.repo.ListVotesByContent(ctx, contentID)
}

// Like appends a like row for the user and bumps the vote's counter. Likes are
// not deduplicated.
func (s *VoteService) Like(ctx context.Context, userID string, voteID int64) error {
	if err := s.repo.InsertLike(ctx, userID, voteID); err != nil {
		return err
	}
	return s.repo.IncrementVoteLike(ctx, voteID)
}

func (s *VoteService) LikesByUser(ctx context.Context, userID string) ([]models.Like, error) {
	return s.repo.ListLikesByUser(ctx, userID)
}

// RecomputeAverage sets the content's average to the mean of all its vote
// scores. No votes means the stored average stays untouched.
func (s *VoteService) RecomputeAverage(ctx context.Context, contentID int64) error {
	votes, err := s.repo.ListVotesByContent(ctx, contentID)
	if err != nil {
		return err
	}
	if len(votes) == 0 {
		return nil
	}
	var total float64
	for _, v := range votes {
		total += v.Score
	}
	return s.repo.SetVoteAverageScore(ctx, contentID, total/float64(len(votes)))
}

// recomputeAsync runs the recompute after the response may already have been
// sent. Best effort: errors are logged and dropped.
func (s *VoteService) recomputeAsync(contentID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.RecomputeAverage(ctx, contentID); err != nil && s.logger != nil {
			s.logger.Printf("vote average recompute for content %d failed: %v", contentID, err)
		}
	}()
}
