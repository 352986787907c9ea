package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/service"
)

const sessionHelp = `Commands:
  meta <field> <value>        set invoice_number, invoice_date, due_date, terms, subject, client_name or client_ndis
  seller <field> <value>      set name, address1, address2, country, abn, email, bank_name, bank_bsb or bank_account
  add                         add a day (dated the day after the last one)
  remove <day>                remove a day by number or ID
  set <day> key=value ...     change date, hours, rate, km or km_rate of a day
  list                        list days
  status                      show totals and what is missing
  totals                      show totals
  save-profile                save the seller details
  load-profile                replace the seller details with the saved profile
  clear-profile               delete the saved profile
  preview [text|html]         print a preview
  export [format] [dir]       export the invoice (default pdf)
  save-draft [file]           write the invoice to a draft file
  help                        show this help
  quit                        leave the session`

func newSessionCmd(app *application) *cobra.Command {
	var previewFile, draftPath string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Build an invoice interactively",
		Long: `Start an interactive session for filling in an invoice. Totals are recalculated after
every change, and --preview-file keeps an HTML preview up to date while you edit.
When stdin is not a terminal, commands are read one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var c *form.Coordinator
			if draftPath != "" {
				var err error
				if c, err = app.svc.LoadDraft(ctx, draftPath); err != nil {
					return err
				}
			} else {
				c = app.svc.NewInvoice(ctx)
			}

			if previewFile != "" {
				c.Subscribe(func(snap form.Snapshot) {
					if err := app.svc.PreviewToFile(ctx, snap, "html", previewFile); err != nil {
						app.svc.Logger().Warn("failed to refresh preview", zap.String("path", previewFile), zap.Error(err))
					}
				})
				fmt.Printf("Live preview: %s\n", previewFile)
			}

			s := &session{ctx: ctx, svc: app.svc, form: c, draftPath: draftPath}

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				p := tea.NewProgram(newSessionModel(s), tea.WithContext(ctx), tea.WithInput(f))
				_, err := p.Run()
				return err
			}

			s.out = os.Stdout
			return s.runScript(bufio.NewScanner(in))
		},
	}

	cmd.Flags().StringVar(&previewFile, "preview-file", "", "HTML file refreshed after every change")
	cmd.Flags().StringVarP(&draftPath, "draft", "f", "", "Start from this draft file")

	return cmd
}

type session struct {
	ctx       context.Context
	svc       *service.InvoiceService
	form      *form.Coordinator
	draftPath string
	out       io.Writer
}

// runScript executes one command per line, for piped or redirected input.
func (s *session) runScript(scanner *bufio.Scanner) error {
	fmt.Fprintln(s.out, "Type 'help' for commands.")
	fmt.Fprintln(s.out, s.svc.FormatTotals(s.form.Totals()))

	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if s.handle(scanner.Text()) {
			return nil
		}
	}
}

// handle runs one command line and reports whether the session should end.
// Errors are printed and the session carries on.
func (s *session) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	if fields[0] == "quit" || fields[0] == "exit" {
		return true
	}
	if err := s.exec(fields[0], fields[1:]); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *session) exec(command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprintln(s.out, sessionHelp)

	case "meta", "seller":
		if len(args) < 1 {
			return fmt.Errorf("usage: %s <field> <value>", command)
		}
		value := strings.Join(args[1:], " ")
		var err error
		if command == "meta" {
			err = s.form.SetMetaField(args[0], value)
		} else {
			err = s.form.SetSellerField(args[0], value)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.svc.FormatTotals(s.form.Totals()))

	case "add":
		d := s.form.AddDay()
		fmt.Fprintf(s.out, "Added day %d (%s)\n", len(s.form.Days()), d.Date)

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <day>")
		}
		id, err := s.resolveDay(args[0])
		if err != nil {
			return err
		}
		if err := s.form.RemoveDay(id); err != nil {
			if errors.Is(err, form.ErrLastDay) {
				return fmt.Errorf("an invoice needs at least one day")
			}
			return err
		}
		fmt.Fprintln(s.out, s.svc.FormatTotals(s.form.Totals()))

	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: set <day> key=value ...")
		}
		id, err := s.resolveDay(args[0])
		if err != nil {
			return err
		}
		patch, err := parseDayPatch(args[1:])
		if err != nil {
			return err
		}
		if _, err := s.form.PatchDay(id, patch); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.svc.FormatTotals(s.form.Totals()))

	case "list":
		s.svc.DisplayDays(s.out, s.form.Snapshot())

	case "status":
		s.svc.DisplayStatus(s.out, s.form.Snapshot())

	case "totals":
		fmt.Fprintln(s.out, s.svc.FormatTotals(s.form.Totals()))

	case "save-profile":
		if err := s.svc.SaveProfile(s.ctx, s.form.Seller()); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Saved profile.")

	case "load-profile":
		p, ok := s.svc.LoadProfile(s.ctx)
		if !ok {
			fmt.Fprintln(s.out, "No saved profile.")
			return nil
		}
		s.form.SetSeller(p.Seller)
		fmt.Fprintln(s.out, "Loaded profile.")

	case "clear-profile":
		if err := s.svc.ClearProfile(s.ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Cleared saved profile.")

	case "preview":
		format := "text"
		if len(args) > 0 {
			format = args[0]
		}
		return s.svc.Preview(s.ctx, s.form.Snapshot(), format, s.out)

	case "export":
		format, dir := "pdf", ""
		if len(args) > 0 {
			format = args[0]
		}
		if len(args) > 1 {
			dir = args[1]
		}
		path, err := s.svc.Export(s.ctx, s.form.Snapshot(), format, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Generated invoice: %s\n", path)

	case "save-draft":
		path := s.draftPath
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path = defaultDraftFile
		}
		if err := s.svc.SaveDraft(s.form.Snapshot(), path); err != nil {
			return err
		}
		s.draftPath = path
		fmt.Fprintf(s.out, "Saved draft: %s\n", path)

	default:
		return fmt.Errorf("unknown command %q, type 'help' for commands", command)
	}

	return nil
}

// resolveDay accepts a 1-based position from "list" or a day ID.
func (s *session) resolveDay(ref string) (string, error) {
	days := s.form.Days()
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		if n < 1 || n > len(days) {
			return "", fmt.Errorf("%w: %s", form.ErrDayNotFound, ref)
		}
		return days[n-1].ID, nil
	}
	return ref, nil
}

func parseDayPatch(assignments []string) (form.DayPatch, error) {
	var patch form.DayPatch
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return patch, fmt.Errorf("expected key=value, got %q", a)
		}

		if key == "date" {
			if _, err := invoice.ParseDate(value); err != nil {
				return patch, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			v := value
			patch.Date = &v
			continue
		}

		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return patch, fmt.Errorf("%s must be a number, got %q", key, value)
		}
		switch key {
		case "hours":
			patch.Hours = &f
		case "rate", "hourly_rate":
			patch.HourlyRate = &f
		case "km":
			patch.Km = &f
		case "km_rate":
			patch.KmRate = &f
		default:
			return patch, fmt.Errorf("unknown day field %q", key)
		}
	}
	return patch, nil
}
