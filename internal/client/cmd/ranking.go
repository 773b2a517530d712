package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

type rankingClient struct {
	serverURL *string
}

func newRankingCmd(serverURL *string) *cobra.Command {
	r := &rankingClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "ranking", Short: "Leaderboard commands"}

	top := &cobra.Command{Use: "top", Short: "Show the leaderboard for a chart", RunE: r.top}
	top.Flags().String("chart-hash", "", "Chart hash")
	top.Flags().Int("difficulty", 0, "Difficulty")
	_ = top.MarkFlagRequired("chart-hash")
	_ = top.MarkFlagRequired("difficulty")
	cmd.AddCommand(top)

	submit := &cobra.Command{Use: "submit", Short: "Submit a score as the logged-in account", RunE: r.submit}
	submit.Flags().String("song", "", "Song title")
	submit.Flags().String("chart-hash", "", "Chart hash")
	submit.Flags().Int("difficulty", 0, "Difficulty")
	submit.Flags().Int64("score", 0, "Achieved score")
	submit.Flags().Int64("max-score", 0, "Maximum attainable score")
	_ = submit.MarkFlagRequired("song")
	_ = submit.MarkFlagRequired("chart-hash")
	_ = submit.MarkFlagRequired("score")
	_ = submit.MarkFlagRequired("max-score")
	cmd.AddCommand(submit)

	return cmd
}

func (r *rankingClient) top(cmd *cobra.Command, args []string) error {
	chartHash, _ := cmd.Flags().GetString("chart-hash")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	u := fmt.Sprintf("%s/ranking?chartHash=%s&difficulty=%d", *r.serverURL, url.QueryEscape(chartHash), difficulty)
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ranking fetch failed: %s", resp.Status)
	}
	var result struct {
		Ranking []struct {
			Score   int64  `json:"score"`
			ABCount int64  `json:"abCount"`
			Date    string `json:"date"`
			Account *struct {
				Name string `json:"name"`
				Icon int    `json:"icon"`
			} `json:"account"`
		} `json:"ranking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	for i, e := range result.Ranking {
		name := "(deleted)"
		if e.Account != nil {
			name = e.Account.Name
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%3d. %-20s %8d  AB:%-3d %s\n", i+1, name, e.Score, e.ABCount, e.Date)
	}
	return nil
}

func (r *rankingClient) submit(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}
	song, _ := cmd.Flags().GetString("song")
	chartHash, _ := cmd.Flags().GetString("chart-hash")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	score, _ := cmd.Flags().GetInt64("score")
	maxScore, _ := cmd.Flags().GetInt64("max-score")

	body := map[string]any{
		"songTitle":    song,
		"difficulty":   difficulty,
		"chartHash":    chartHash,
		"accountId":    sess.AccountID,
		"accountToken": sess.Token,
		"score":        score,
		"maxScore":     maxScore,
	}
	b, _ := json.Marshal(body)
	resp, err := http.Post(*r.serverURL+"/ranking", "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("submit failed: %s", resp.Status)
	}
	var result struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func newSupportCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "support",
		Short: "Show the server's feature support flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(*serverURL + "/support")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(resp.Body); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}
}
