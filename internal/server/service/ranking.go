package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

// SubmitOutcome tags what a score submission did to the ledger.
type SubmitOutcome int

const (
	OutcomeNoChange SubmitOutcome = iota
	OutcomeCreated
	OutcomeCreatedPerfect
	OutcomeUpdated
	OutcomeUpdatedPerfect
)

// Created reports whether the submission created the identity's first entry.
func (o SubmitOutcome) Created() bool {
	return o == OutcomeCreated || o == OutcomeCreatedPerfect
}

// Perfect reports whether the submission was a perfect clear.
func (o SubmitOutcome) Perfect() bool {
	return o == OutcomeCreatedPerfect || o == OutcomeUpdatedPerfect
}

// Submission is a score upload. Score and MaxScore are pointers so a missing
// field is distinguishable from a legitimate zero.
type Submission struct {
	SongTitle    string `json:"songTitle"`
	Difficulty   int    `json:"difficulty"`
	ChartHash    string `json:"chartHash"`
	AccountID    string `json:"accountId"`
	AccountToken string `json:"accountToken"`
	Score        *int64 `json:"score"`
	MaxScore     *int64 `json:"maxScore"`
}

// Bounded retries for the submit compare-and-swap; each retry re-reads fresh
// state, so a loss only means another submission for the same identity landed
// first.
const submitRetries = 5

// RankingService holds one entry per (songTitle, difficulty, chartHash,
// accountId): best score only ever rises, the perfect-clear counter grows by
// one per submission that hits maxScore.
type RankingService struct {
	repo     Repository
	accounts *AccountService
	limit    int
}

func (s *RankingService) Submit(ctx context.Context, sub Submission) (SubmitOutcome, error) {
	if _, err := s.accounts.AuthorizeForWrite(ctx, sub.AccountID, sub.AccountToken); err != nil {
		return OutcomeNoChange, err
	}
	if sub.SongTitle == "" || sub.ChartHash == "" || sub.AccountID == "" || sub.AccountToken == "" ||
		sub.Score == nil || sub.MaxScore == nil {
		return OutcomeNoChange, ErrMissingFields
	}
	score, maxScore := *sub.Score, *sub.MaxScore
	if score < 0 || maxScore < 0 {
		return OutcomeNoChange, ErrMissingFields
	}
	perfect := score == maxScore
	today := time.Now().UTC().Format("2006-01-02")

	for i := 0; i < submitRetries; i++ {
		existing, err := s.repo.GetRankingEntry(ctx, sub.SongTitle, sub.Difficulty, sub.ChartHash, sub.AccountID)
		if errors.Is(err, repository.ErrNotFound) {
			entry := models.RankingEntry{
				SongTitle:  sub.SongTitle,
				Difficulty: sub.Difficulty,
				ChartHash:  sub.ChartHash,
				AccountID:  sub.AccountID,
				Score:      score,
				Date:       today,
			}
			if perfect {
				entry.ABCount = 1
			}
			err = s.repo.InsertRankingEntry(ctx, entry)
			if errors.Is(err, repository.ErrConflict) {
				continue // lost the create race, retry as an update
			}
			if err != nil {
				return OutcomeNoChange, err
			}
			if perfect {
				return OutcomeCreatedPerfect, nil
			}
			return OutcomeCreated, nil
		}
		if err != nil {
			return OutcomeNoChange, err
		}

		// Two independent rules; both may fire on one submission.
		next := existing
		updated := false
		if score > existing.Score {
			next.Score = score
			next.Date = today
			updated = true
		}
		if perfect {
			next.ABCount++
			next.Date = today
			updated = true
		}
		if !updated {
			// Lower, non-perfect score: pure no-op, nothing written.
			return OutcomeNoChange, nil
		}
		err = s.repo.UpdateRankingEntryCAS(ctx, next, existing.Score, existing.ABCount)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			return OutcomeNoChange, err
		}
		if perfect {
			return OutcomeUpdatedPerfect, nil
		}
		return OutcomeUpdated, nil
	}
	return OutcomeNoChange, fmt.Errorf("ranking submit: gave up after %d conflicting updates", submitRetries)
}

// Top assembles the public leaderboard for one chart variant: top entries by
// (score desc, abCount desc), banned accounts dropped, deleted accounts kept
// with a null account projection.
func (s *RankingService) Top(ctx context.Context, chartHash, difficulty string) ([]models.RankedEntry, error) {
	chartHash = strings.TrimSpace(chartHash)
	if chartHash == "" || difficulty == "" {
		return nil, ErrMissingParameters
	}
	diff, err := strconv.Atoi(strings.TrimSpace(difficulty))
	if err != nil {
		return nil, ErrMissingParameters
	}

	entries, err := s.repo.ListRanking(ctx, chartHash, diff, s.limit)
	if err != nil {
		return nil, err
	}
	ranked := make([]models.RankedEntry, 0, len(entries))
	for _, e := range entries {
		re := models.RankedEntry{Score: e.Score, ABCount: e.ABCount, Date: e.Date}
		acc, err := s.repo.GetAccount(ctx, e.AccountID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// account deleted out of band; keep the row, hide nothing
		case err != nil:
			return nil, err
		case acc.Banned:
			continue
		default:
			re.Account = &models.RankedAccount{Name: acc.Name, Icon: acc.Icon}
		}
		ranked = append(ranked, re)
	}
	return ranked, nil
}
