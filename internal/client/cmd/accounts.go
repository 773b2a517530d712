package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type accountsClient struct {
	serverURL *string
}

func newAccountsCmd(serverURL *string) *cobra.Command {
	a := &accountsClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "accounts", Short: "Account commands"}
	cmd.AddCommand(&cobra.Command{Use: "register", Short: "Register a new account", RunE: a.register})
	cmd.AddCommand(&cobra.Command{Use: "login", Short: "Login and store the session", RunE: a.login})
	return cmd
}

// session is the locally cached login state used by commands that submit on
// behalf of an account.
type session struct {
	AccountID string `json:"accountId"`
	Token     string `json:"token"`
}

func (a *accountsClient) register(cmd *cobra.Command, args []string) error {
	accountID, password, err := promptCredentials(cmd)
	if err != nil {
		return err
	}
	body := map[string]string{"accountId": accountID, "password": password}
	b, _ := json.Marshal(body)
	resp, err := http.Post(*a.serverURL+"/accounts", "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("register failed: %s", resp.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Registered")
	return nil
}

func (a *accountsClient) login(cmd *cobra.Command, args []string) error {
	accountID, password, err := promptCredentials(cmd)
	if err != nil {
		return err
	}
	body := map[string]string{"accountId": accountID, "password": password}
	b, _ := json.Marshal(body)
	resp, err := http.Post(*a.serverURL+"/accounts/login", "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("login failed: %s", resp.Status)
	}
	var result struct {
		Account struct {
			AccountID string `json:"accountId"`
			Token     string `json:"token"`
		} `json:"account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Account.Token == "" {
		return fmt.Errorf("login response carried no token")
	}
	if err := saveSession(session{AccountID: result.Account.AccountID, Token: result.Account.Token}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
	return nil
}

func promptCredentials(cmd *cobra.Command) (accountID, password string, err error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(cmd.OutOrStdout(), "Account ID: ")
	accountID, _ = reader.ReadString('\n')
	accountID = strings.TrimSpace(accountID)
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", "", err
	}
	return accountID, string(pass), nil
}

func sessionPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".danctl_session")
}

func saveSession(s session) error {
	b, _ := json.Marshal(s)
	return os.WriteFile(sessionPath(), b, 0600)
}

func loadSession() (session, error) {
	b, err := os.ReadFile(sessionPath())
	if err != nil {
		return session{}, fmt.Errorf("no session, please login first")
	}
	var s session
	if err := json.Unmarshal(b, &s); err != nil {
		return session{}, err
	}
	return s, nil
}
