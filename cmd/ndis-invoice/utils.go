package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
)

const defaultDraftFile = "invoice.yaml"

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

func loadDraft(cmd *cobra.Command, app *application, path string) (*form.Coordinator, error) {
	if path == "" {
		path = defaultDraftFile
	}
	return app.svc.LoadDraft(cmd.Context(), path)
}

func addDraftFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", defaultDraftFile, "Draft invoice file (YAML)")
}
