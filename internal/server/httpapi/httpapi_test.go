package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/config"
	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository/sqlite"
	"github.com/MI11435/DankagLike-Custom-Server/internal/server/service"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

func seedContent(t *testing.T, repo *sqlite.Repository) {
	t.Helper()
	err := repo.InsertContent(context.Background(), models.Content{
		ID: 1, ContentType: 0, Title: "Song A", Publisher: "pub",
		Description: "desc", DownloadURL: "http://dl", ImageURL: "http://img",
		Date: "2026-08-28", SongInfo: models.SongInfo{Difficulties: []int{3, 6, 9}},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T, name string) (http.Handler, *sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	svcs := service.NewServices(repo, config.Config{JWTSecret: "test", RankingLimit: 200}, nil)
	return NewRouter(svcs, nil, 1<<20), repo
}

func doJSON(t *testing.T, ts http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndSupport(t *testing.T) {
	ts, _ := newTestServer(t, "api_health")
	if rr := doJSON(t, ts, "GET", "/health", nil); rr.Code != http.StatusOK {
		t.Fatalf("health: %d", rr.Code)
	}
	rr := doJSON(t, ts, "GET", "/support", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("support: %d", rr.Code)
	}
	var support struct {
		Accounts bool `json:"accounts"`
		Ranking  bool `json:"ranking"`
		Options  struct {
			RequireAccountEmail bool `json:"requireAccountEmail"`
		} `json:"options"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &support)
	if !support.Accounts || !support.Ranking || support.Options.RequireAccountEmail {
		t.Fatalf("support flags: %s", rr.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t, "api_cors")
	req, _ := http.NewRequest(http.MethodOptions, "/ranking", nil)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight: %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func loginAs(t *testing.T, ts http.Handler, accountID string) string {
	t.Helper()
	rr := doJSON(t, ts, "POST", "/accounts", map[string]any{"accountId": accountID, "password": "pass"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "POST", "/accounts/login", map[string]any{"accountId": accountID, "password": "pass"})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	var result struct {
		Account struct {
			Token string `json:"token"`
		} `json:"account"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &result)
	if result.Account.Token == "" {
		t.Fatalf("no token in login response: %s", rr.Body.String())
	}
	return result.Account.Token
}

func TestAccountEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, "api_accounts")

	token := loginAs(t, ts, "u1")

	// the login response never carries the credential
	rr := doJSON(t, ts, "POST", "/accounts/login", map[string]any{"accountId": "u1", "password": "pass"})
	if bytes.Contains(rr.Body.Bytes(), []byte("password")) {
		t.Fatalf("credential leaked: %s", rr.Body.String())
	}

	if rr := doJSON(t, ts, "POST", "/accounts", map[string]any{"accountId": "u1", "password": "x"}); rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "POST", "/accounts/login", map[string]any{"accountId": "u1", "password": "wrong"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "POST", "/accounts/login", map[string]any{"accountId": "ghost", "password": "pass"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("unknown account: %d", rr.Code)
	}

	if rr := doJSON(t, ts, "PUT", "/accounts", map[string]any{"accountId": "u1", "token": "bogus", "name": "X"}); rr.Code != http.StatusNotFound {
		t.Fatalf("update with bad token: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "PUT", "/accounts", map[string]any{"accountId": "u1", "name": "X"}); rr.Code != http.StatusBadRequest {
		t.Fatalf("update without token: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "PUT", "/accounts", map[string]any{"accountId": "u1", "token": token, "name": "X", "icon": 4}); rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body.String())
	}

	if rr := doJSON(t, ts, "POST", "/accounts/request-password-reset", map[string]any{"email": "x@example.com"}); rr.Code != http.StatusOK {
		t.Fatalf("password reset request: %d", rr.Code)
	}
}

func TestBannedLogin(t *testing.T) {
	ts, repo := newTestServer(t, "api_banned")
	loginAs(t, ts, "u1")
	if err := repo.SetAccountBanned(context.Background(), "u1", true); err != nil {
		t.Fatal(err)
	}
	if rr := doJSON(t, ts, "POST", "/accounts/login", map[string]any{"accountId": "u1", "password": "pass"}); rr.Code != http.StatusForbidden {
		t.Fatalf("banned login: %d", rr.Code)
	}
}

func TestRankingEndpoints(t *testing.T) {
	ts, repo := newTestServer(t, "api_ranking")
	token := loginAs(t, ts, "u1")

	sub := map[string]any{
		"songTitle": "Foo", "difficulty": 5, "chartHash": "abc",
		"accountId": "u1", "accountToken": token,
		"score": 800000, "maxScore": 1000000,
	}
	if rr := doJSON(t, ts, "POST", "/ranking", sub); rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	sub["score"] = 1000000
	if rr := doJSON(t, ts, "POST", "/ranking", sub); rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body.String())
	}
	// resubmitting a lower score is still a 200, nothing changes
	sub["score"] = 1
	if rr := doJSON(t, ts, "POST", "/ranking", sub); rr.Code != http.StatusOK {
		t.Fatalf("no-op: %d", rr.Code)
	}

	sub["accountToken"] = "bogus"
	if rr := doJSON(t, ts, "POST", "/ranking", sub); rr.Code != http.StatusForbidden {
		t.Fatalf("bad token: %d", rr.Code)
	}
	sub["accountToken"] = token
	delete(sub, "maxScore")
	if rr := doJSON(t, ts, "POST", "/ranking", sub); rr.Code != http.StatusBadRequest {
		t.Fatalf("missing maxScore: %d", rr.Code)
	}

	if rr := doJSON(t, ts, "GET", "/ranking?difficulty=5", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("missing chartHash: %d", rr.Code)
	}
	rr := doJSON(t, ts, "GET", "/ranking?chartHash=abc&difficulty=5", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get ranking: %d %s", rr.Code, rr.Body.String())
	}
	var result struct {
		Ranking []struct {
			Score   int64 `json:"score"`
			ABCount int64 `json:"abCount"`
			Account *struct {
				Name string `json:"name"`
			} `json:"account"`
		} `json:"ranking"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &result)
	if len(result.Ranking) != 1 || result.Ranking[0].Score != 1000000 || result.Ranking[0].ABCount != 1 {
		t.Fatalf("ranking body: %s", rr.Body.String())
	}
	if result.Ranking[0].Account == nil || result.Ranking[0].Account.Name != "u1" {
		t.Fatalf("account projection: %s", rr.Body.String())
	}

	// banning the account hides its entry
	if err := repo.SetAccountBanned(context.Background(), "u1", true); err != nil {
		t.Fatal(err)
	}
	rr = doJSON(t, ts, "GET", "/ranking?chartHash=abc&difficulty=5", nil)
	_ = json.Unmarshal(rr.Body.Bytes(), &result)
	if len(result.Ranking) != 0 {
		t.Fatalf("banned entry visible: %s", rr.Body.String())
	}
}

func TestContentAndVoteEndpoints(t *testing.T) {
	ts, repo := newTestServer(t, "api_contents")

	if rr := doJSON(t, ts, "GET", "/contents", nil); rr.Code != http.StatusOK {
		t.Fatalf("empty contents: %d", rr.Code)
	}

	seedContent(t, repo)

	rr := doJSON(t, ts, "GET", "/contents", nil)
	var listing struct {
		Contents []struct {
			ID          int64  `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"contents"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &listing)
	if len(listing.Contents) != 1 || listing.Contents[0].Title != "Song A" {
		t.Fatalf("contents: %s", rr.Body.String())
	}
	if listing.Contents[0].Description != "" {
		t.Fatalf("listing leaked description: %s", rr.Body.String())
	}

	if rr := doJSON(t, ts, "GET", "/contents/1/description", nil); rr.Code != http.StatusOK {
		t.Fatalf("description: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "PUT", "/contents/1/downloaded", nil); rr.Code != http.StatusOK {
		t.Fatalf("downloaded: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "GET", "/contents/abc", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", rr.Code)
	}

	vote := map[string]any{"userId": "u1", "name": "u1", "score": 4, "comment": "nice", "date": "2026-08-28"}
	if rr := doJSON(t, ts, "POST", "/contents/1/vote", vote); rr.Code != http.StatusOK {
		t.Fatalf("cast vote: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "GET", "/contents/1/vote", nil)
	var votesResp struct {
		Votes []struct {
			ID    int64   `json:"id"`
			Score float64 `json:"score"`
		} `json:"votes"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &votesResp)
	if len(votesResp.Votes) != 1 || votesResp.Votes[0].Score != 4 {
		t.Fatalf("votes: %s", rr.Body.String())
	}

	voteID := votesResp.Votes[0].ID
	if rr := doJSON(t, ts, "PUT", "/likes/fan", map[string]any{"voteId": voteID}); rr.Code != http.StatusOK {
		t.Fatalf("like: %d", rr.Code)
	}
	rr = doJSON(t, ts, "GET", "/likes/fan", nil)
	var likesResp struct {
		Likes []struct {
			VoteID int64 `json:"voteId"`
		} `json:"likes"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &likesResp)
	if len(likesResp.Likes) != 1 || likesResp.Likes[0].VoteID != voteID {
		t.Fatalf("likes: %s", rr.Body.String())
	}

	edit := map[string]any{"id": voteID, "userId": "u1", "score": 5, "comment": "great", "date": "2026-08-29"}
	if rr := doJSON(t, ts, "PUT", "/contents/1/vote", edit); rr.Code != http.StatusOK {
		t.Fatalf("edit vote: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "GET", "/likes/fan", nil)
	_ = json.Unmarshal(rr.Body.Bytes(), &likesResp)
	if len(likesResp.Likes) != 0 {
		t.Fatalf("likes survived edit: %s", rr.Body.String())
	}
}
