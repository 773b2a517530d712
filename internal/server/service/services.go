package service

import (
	"context"
	"errors"
	"log"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/config"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

// Repository is the persistent store consumed by all services. Every invariant
// that needs atomicity stronger than read-then-write (counters, the ranking
// compare-and-swap) is pushed down behind this interface as a single atomic
// operation.
type Repository interface {
	CreateAccount(ctx context.Context, accountID, password, name string, icon int) (models.Account, error)
	GetAccount(ctx context.Context, accountID string) (models.Account, error)
	SetAccountToken(ctx context.Context, accountID, token string) error
	SetAccountPassword(ctx context.Context, accountID, password string) error
	UpdateAccount(ctx context.Context, accountID, token string, name *string, icon *int, password *string) error

	GetRankingEntry(ctx context.Context, songTitle string, difficulty int, chartHash, accountID string) (models.RankingEntry, error)
	InsertRankingEntry(ctx context.Context, e models.RankingEntry) error
	UpdateRankingEntryCAS(ctx context.Context, e models.RankingEntry, prevScore, prevABCount int64) error
	ListRanking(ctx context.Context, chartHash string, difficulty, limit int) ([]models.RankingEntry, error)

	NextSequence(ctx context.Context, name string) (int64, error)
	UpsertVote(ctx context.Context, v models.Vote) error
	UpdateVote(ctx context.Context, v models.Vote) error
	ListVotes(ctx context.Context) ([]models.Vote, error)
	ListVotesByContent(ctx context.Context, contentID int64) ([]models.Vote, error)
	InsertLike(ctx context.Context, userID string, voteID int64) error
	IncrementVoteLike(ctx context.Context, voteID int64) error
	DeleteLikesByVote(ctx context.Context, voteID int64) error
	ListLikesByUser(ctx context.Context, userID string) ([]models.Like, error)

	InsertContent(ctx context.Context, c models.Content) error
	GetContent(ctx context.Context, id int64) (models.Content, error)
	ListContents(ctx context.Context) ([]models.Content, error)
	IncrementDownloadCount(ctx context.Context, id int64) error
	SetVoteAverageScore(ctx context.Context, id int64, avg float64) error
}

// Error taxonomy surfaced to the HTTP layer. Login and account-update failures
// are deliberately vague about which condition failed, to avoid account
// enumeration.
var (
	ErrMissingFields          = errors.New("missing required fields")
	ErrMissingParameters      = errors.New("chartHash and difficulty are required")
	ErrDuplicateAccount       = errors.New("account id already exists")
	ErrAccountNotFound        = errors.New("account not found")
	ErrBanned                 = errors.New("account is banned")
	ErrInvalidCredential      = errors.New("wrong password")
	ErrInvalidToken           = errors.New("account login token is invalid")
	ErrNotFoundOrUnauthorized = errors.New("account not found or invalid token")
)

type Services struct {
	Accounts *AccountService
	Ranking  *RankingService
	Votes    *VoteService
	Contents *ContentService
}

func NewServices(repo Repository, cfg config.Config, logger *log.Logger) *Services {
	accounts := &AccountService{repo: repo, jwtSecret: []byte(cfg.JWTSecret)}
	return &Services{
		Accounts: accounts,
		Ranking:  &RankingService{repo: repo, accounts: accounts, limit: cfg.RankingLimit},
		Votes:    &VoteService{repo: repo, logger: logger},
		Contents: &ContentService{repo: repo},
	}
}
