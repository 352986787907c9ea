package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

func newProfileCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your saved seller details",
		Long:  "Show, update or clear the seller details (name, address, ABN, bank) printed on every invoice.",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
		newProfileClearCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved seller profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := app.svc.LoadProfile(cmd.Context())
			if !ok {
				fmt.Println("No saved profile.")
				return nil
			}
			printSeller(p.Seller)
			return nil
		},
	}
}

func newProfileSetCmd(app *application) *cobra.Command {
	var template models.Seller
	values := make(map[string]*string)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update fields of the saved seller profile",
		Long: `Update one or more seller fields and save the profile. Fields you don't pass keep
their saved value.`,
		Example: `  ndis-invoice profile set --name "Jane Carer" --abn "12 345 678 901"
  ndis-invoice profile set --bank-bsb 062-000 --bank-account 12345678`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			seller := app.svc.CurrentSeller(ctx)
			changed := 0
			for _, f := range seller.Fields() {
				if !cmd.Flags().Changed(flagName(f.Name)) {
					continue
				}
				if err := seller.Set(f.Name, *values[f.Name]); err != nil {
					return err
				}
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("no fields given, see --help")
			}

			if err := app.svc.SaveProfile(ctx, seller); err != nil {
				return err
			}

			fmt.Printf("Saved profile (%d field(s) updated).\n", changed)
			printSeller(seller)
			return nil
		},
	}

	for _, f := range template.Fields() {
		v := new(string)
		values[f.Name] = v
		cmd.Flags().StringVar(v, flagName(f.Name), "", f.Label)
	}

	return cmd
}

func newProfileClearCmd(app *application) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved seller profile",
		Long:  "Delete the saved seller profile. Use with caution - this action cannot be undone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirm(cmd, "This will permanently delete your saved seller profile. Are you sure? (y/N): ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Operation cancelled.")
					return nil
				}
			}

			if err := app.svc.ClearProfile(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Cleared saved profile.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func printSeller(seller models.Seller) {
	for _, f := range seller.Fields() {
		value := f.Value()
		if strings.TrimSpace(value) == "" {
			value = "(not set)"
		}
		fmt.Printf("%-12s %s\n", f.Label+":", value)
	}
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}
