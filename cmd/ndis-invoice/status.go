package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *application) *cobra.Command {
	var draftPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a draft's days, totals and readiness",
		Long:  "Display the draft invoice, its running totals and any fields still needed before it can be exported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadDraft(cmd, app, draftPath)
			if err != nil {
				return err
			}

			app.svc.DisplayStatus(os.Stdout, c.Snapshot())
			return nil
		},
	}

	addDraftFlag(cmd, &draftPath)

	return cmd
}
