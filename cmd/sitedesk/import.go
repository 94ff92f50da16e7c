package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/eringen/sitedesk"
)

func newImportCommand() *cobra.Command {
	var dbPath, prefix string
	cmd := &cobra.Command{
		Use:   "import <users|donations|user_logins> <file.json|->",
		Short: "Replace an externally written collection with a JSON array",
		Long: `Replace one of the collections the public site writes (registrations,
donations, login records) with the JSON array read from a file or stdin.
Every record is validated first; on any error nothing is written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sitedesk.LoadConfig()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.DatabasePath
			}
			if !cmd.Flags().Changed("key-prefix") {
				prefix = cfg.KeyPrefix
			}
			return runImport(cmd, dbPath, prefix, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides DATABASE_PATH)")
	cmd.Flags().StringVar(&prefix, "key-prefix", "", "key prefix (overrides KEY_PREFIX)")
	return cmd
}

func runImport(cmd *cobra.Command, dbPath, prefix, key, file string) error {
	if !slices.Contains(sitedesk.ExternalKeys, key) {
		return fmt.Errorf("unknown collection %q: must be one of %v", key, sitedesk.ExternalKeys)
	}
	data, err := readInput(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}
	store, err := sitedesk.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := sitedesk.ImportExternal(store, prefix, key, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s%s\n", n, prefix, key)
	return nil
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}
