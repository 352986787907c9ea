package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDraftCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage draft invoice files",
	}

	cmd.AddCommand(newDraftInitCmd(app))

	return cmd
}

func newDraftInitCmd(app *application) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter draft invoice",
		Long: `Write a YAML draft with default invoice details and one day entry. The seller block
is left out so your saved profile is used when the draft is loaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultDraftFile
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := app.svc.WriteDraftTemplate(path); err != nil {
				return err
			}

			fmt.Printf("Created draft invoice: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
