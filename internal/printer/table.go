package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wardenhq/warden/internal/model"
)

// TablePrinter prints sandbox information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints sandboxes in a table format.
func (t *TablePrinter) PrintList(sandboxes []model.Sandbox) error {
	if len(sandboxes) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tSTATUS\tIMAGE\tCONTAINER\tCREATED")

	for _, s := range sandboxes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Status, s.Image, shortID(s.ContainerID), TimeAgo(s.CreatedAt))
	}

	return nil
}

// PrintChecks prints preflight check results, one per line.
func (t *TablePrinter) PrintChecks(results []model.CheckResult) error {
	for _, r := range results {
		mark := "?"
		switch r.Status {
		case model.CheckStatusOK:
			mark = "✓"
		case model.CheckStatusWarning:
			mark = "!"
		case model.CheckStatusError:
			mark = "✗"
		}
		fmt.Fprintf(t.writer, "%s %s: %s\n", mark, r.ID, r.Message)
	}

	ok, warnings, errs := model.CountByStatus(results)
	fmt.Fprintf(t.writer, "\n%d ok, %d warnings, %d errors\n", ok, warnings, errs)

	return nil
}

// PrintMessage prints a plain message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

// shortID truncates container IDs the way engines usually present them.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
