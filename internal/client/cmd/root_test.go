package cmd

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"
)

func withTempHome(t *testing.T) func() {
	t.Helper()
	dir := t.TempDir()
	oldHOME, hadHOME := os.LookupEnv("HOME")
	oldUSERPROFILE, hadUSERPROFILE := os.LookupEnv("USERPROFILE")
	os.Setenv("HOME", dir)
	os.Setenv("USERPROFILE", dir)
	if runtime.GOOS == "windows" {
		os.Setenv("HOMEDRIVE", "")
		os.Setenv("HOMEPATH", "")
	}
	return func() {
		if hadHOME {
			os.Setenv("HOME", oldHOME)
		} else {
			os.Unsetenv("HOME")
		}
		if hadUSERPROFILE {
			os.Setenv("USERPROFILE", oldUSERPROFILE)
		} else {
			os.Unsetenv("USERPROFILE")
		}
	}
}

func TestRoot_VersionAndSubcommands(t *testing.T) {
	root := NewRootCmd("1.0.0", "2026-08-28")
	out := new(bytes.Buffer)
	root.SetOut(out)

	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1.0.0") {
		t.Fatalf("version output: %q", out.String())
	}

	for _, name := range []string{"accounts", "ranking", "support"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing %s command", name)
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	if _, err := loadSession(); err == nil {
		t.Fatalf("expected error without a session file")
	}
	if err := saveSession(session{AccountID: "u1", Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	s, err := loadSession()
	if err != nil || s.AccountID != "u1" || s.Token != "tok" {
		t.Fatalf("session: %v %+v", err, s)
	}
}
