package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	applist "github.com/wardenhq/warden/internal/app/list"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/printer"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter string
	format       string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all sandboxes.")
	c.Cmd.Flag("status", "Filter by status (running, stopped, failed).").StringVar(&c.statusFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	var statusFilter *model.SandboxStatus
	if c.statusFilter != "" {
		status := model.SandboxStatus(strings.ToLower(c.statusFilter))
		switch status {
		case model.SandboxStatusRunning, model.SandboxStatusStopped, model.SandboxStatusFailed:
			statusFilter = &status
		default:
			return fmt.Errorf("invalid status filter: %s (must be: running, stopped, failed)", c.statusFilter)
		}
	}

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := applist.NewService(applist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	sandboxes, err := svc.Run(ctx, applist.Request{StatusFilter: statusFilter})
	if err != nil {
		return fmt.Errorf("could not list sandboxes: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintList(sandboxes); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
