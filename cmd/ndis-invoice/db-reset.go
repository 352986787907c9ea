package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/ndis-invoice/internal/database"
)

func newDbResetCmd(app *application) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "db-reset",
		Short: "Delete everything in the database and recreate it",
		Long: `Drop the key-value table and recreate it with a fresh schema.
This will permanently delete your saved seller profile.

WARNING: This operation cannot be undone!`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Println("WARNING: This will permanently delete your saved seller profile!")
				ok, err := confirm(cmd, "Are you sure you want to continue? (y/N): ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Database reset cancelled.")
					return nil
				}
			}

			r, ok := app.kv.(database.Resetter)
			if !ok {
				return fmt.Errorf("database backend does not support reset")
			}
			if err := r.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("failed to reset database: %w", err)
			}

			fmt.Printf("Successfully reset database: %s\n", app.svc.Config().DatabaseURL)
			fmt.Println("Database is ready for use with a fresh schema.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
