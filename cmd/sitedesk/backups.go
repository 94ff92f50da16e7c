package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/sitedesk"
)

func newBackupsCommand() *cobra.Command {
	var dbPath, prefix, discard string
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List or discard saved copies of corrupt collections",
		Long: `When the console overwrites a collection whose stored text was not valid
JSON, the old text is kept under "<key>.corrupt". This command lists those
copies, or deletes one with --discard.`,
		Args: cobra.NoArgs,
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
			store, err := sitedesk.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if discard != "" {
				if err := sitedesk.DiscardBackup(store, prefix, discard); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "discarded %s\n", discard)
				return nil
			}
			keys, err := sitedesk.Backups(store, prefix)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no backups")
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides DATABASE_PATH)")
	cmd.Flags().StringVar(&prefix, "key-prefix", "", "key prefix (overrides KEY_PREFIX)")
	cmd.Flags().StringVar(&discard, "discard", "", "delete the named backup key")
	return cmd
}
