package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCmd(version, buildDate string) *cobra.Command {
	var serverURL string
	root := &cobra.Command{
		Use:   "danctl",
		Short: "Operator CLI for the DankagLike custom server",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "Server base URL")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAccountsCmd(&serverURL))
	root.AddCommand(newRankingCmd(&serverURL))
	root.AddCommand(newSupportCmd(&serverURL))
	return root
}

func newVersionCmd(version, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "danctl %s (%s)\n", version, buildDate)
		},
	}
}
