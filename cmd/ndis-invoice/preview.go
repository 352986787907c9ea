package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newPreviewCmd(app *application) *cobra.Command {
	var draftPath string
	var html bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a preview of the invoice",
		Long:  "Render the draft to stdout as text, or HTML with --html. Incomplete drafts can be previewed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadDraft(cmd, app, draftPath)
			if err != nil {
				return err
			}

			format := "text"
			if html {
				format = "html"
			}
			return app.svc.Preview(cmd.Context(), c.Snapshot(), format, os.Stdout)
		},
	}

	addDraftFlag(cmd, &draftPath)
	cmd.Flags().BoolVar(&html, "html", false, "Render HTML instead of text")

	return cmd
}
