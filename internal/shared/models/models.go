package models

import "time"

// Account is the stored account row. Password holds an Argon2id PHC string,
// except for legacy rows imported before hashing was introduced, which may
// still hold the plaintext until the first successful login migrates them.
type Account struct {
	ID        string
	AccountID string
	Password  string
	Token     string
	Name      string
	Icon      int
	Banned    bool
	CreatedAt time.Time
}

// Sanitized strips everything that must never leave the server. The token is
// filled in only on login responses.
func (a Account) Sanitized(withToken bool) SanitizedAccount {
	s := SanitizedAccount{AccountID: a.AccountID, Name: a.Name, Icon: a.Icon}
	if withToken {
		s.Token = a.Token
	}
	return s
}

type SanitizedAccount struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
	Icon      int    `json:"icon"`
	Token     string `json:"token,omitempty"`
}

// RankingEntry is one player's record for one chart variant, unique per
// (songTitle, difficulty, chartHash, accountId). Score and ABCount only grow.
type RankingEntry struct {
	SongTitle  string `json:"songTitle"`
	Difficulty int    `json:"difficulty"`
	ChartHash  string `json:"chartHash"`
	AccountID  string `json:"accountId"`
	Score      int64  `json:"score"`
	ABCount    int64  `json:"abCount"`
	Date       string `json:"date"` // YYYY-MM-DD, no time component
}

// RankedEntry is the public leaderboard projection. Account is nil when the
// owning account no longer exists; banned accounts are filtered out entirely
// before this type is built.
type RankedEntry struct {
	Score   int64          `json:"score"`
	ABCount int64          `json:"abCount"`
	Date    string         `json:"date"`
	Account *RankedAccount `json:"account"`
}

type RankedAccount struct {
	Name string `json:"name"`
	Icon int    `json:"icon"`
}

type SongInfo struct {
	Difficulties []int `json:"difficulties"`
	HasLua       bool  `json:"hasLua"`
}

type Content struct {
	ID               int64    `json:"id"`
	ContentType      int      `json:"contentType"`
	Title            string   `json:"title"`
	Publisher        string   `json:"publisher"`
	Description      string   `json:"description,omitempty"`
	DownloadURL      string   `json:"downloadUrl,omitempty"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	Date             string   `json:"date"`
	DownloadCount    int64    `json:"downloadCount"`
	VoteAverageScore float64  `json:"voteAverageScore"`
	SongInfo         SongInfo `json:"songInfo"`
}

// ContentSummary is the listing projection: no description or URLs.
type ContentSummary struct {
	ID               int64    `json:"id"`
	ContentType      int      `json:"contentType"`
	Title            string   `json:"title"`
	Publisher        string   `json:"publisher"`
	Date             string   `json:"date"`
	DownloadCount    int64    `json:"downloadCount"`
	VoteAverageScore float64  `json:"voteAverageScore"`
	SongInfo         SongInfo `json:"songInfo"`
}

// Vote is one user's rating of one content, unique per (contentId, userId).
type Vote struct {
	ID        int64   `json:"id"`
	ContentID int64   `json:"contentId"`
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Comment   string  `json:"comment"`
	Like      int64   `json:"like"`
	Date      string  `json:"date"`
}

type Like struct {
	UserID string `json:"userId"`
	VoteID int64  `json:"voteId"`
}
