package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/wardenhq/warden/internal/app/credsinject"
	"github.com/wardenhq/warden/internal/creds"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/printer"
)

type CredsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID   string
	copyClaude bool
	copyCodex  bool
}

// NewCredsCommand returns the creds command.
func NewCredsCommand(rootCmd *RootCommand, app *kingpin.Application) *CredsCommand {
	c := &CredsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("creds", "Copy host agent credentials into a running sandbox.")
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	c.Cmd.Flag("claude", "Copy the host ~/.claude credentials.").BoolVar(&c.copyClaude)
	c.Cmd.Flag("codex", "Copy the host ~/.codex credentials.").BoolVar(&c.copyCodex)

	return c
}

func (c CredsCommand) Name() string { return c.Cmd.FullCommand() }

func (c CredsCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	eng, closeEngine, err := newEngine(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeEngine()

	planner, err := creds.NewHomePlanner(homedir.HomeDir(), logger)
	if err != nil {
		return fmt.Errorf("could not create credential planner: %w", err)
	}

	svc, err := credsinject.NewService(credsinject.ServiceConfig{
		Engine:     eng,
		Repository: repo,
		Planner:    planner,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, credsinject.Request{
		NameOrID: c.nameOrID,
		Options: model.CredentialOptions{
			CopyClaude: c.copyClaude,
			CopyCodex:  c.copyCodex,
		},
	})
	if err != nil {
		return fmt.Errorf("could not inject credentials: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if len(result.ExpectedContainerPaths) == 0 {
		return p.PrintMessage("No credentials found on the host, nothing uploaded")
	}
	return p.PrintMessage(fmt.Sprintf("Credentials uploaded: %s", strings.Join(result.ExpectedContainerPaths, ", ")))
}
