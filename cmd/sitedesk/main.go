package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sitedesk",
		Short:         "sitedesk - content console for an association website",
		Long:          "Runs the admin console and maintains the collections it shares with the public site.\nConfiguration is read from the environment (SITE_NAME, DATABASE_PATH, ADMIN_PASSWORD, ...).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newImportCommand())
	cmd.AddCommand(newBackupsCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the sitedesk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sitedesk %s\n", version)
		},
	})
	return cmd
}
