package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	appexec "github.com/wardenhq/warden/internal/app/exec"
	utilsenv "github.com/wardenhq/warden/internal/utils/env"
)

type ExecCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
	command  []string
	envSpecs []string
	tty      bool
	detach   bool
}

// NewExecCommand returns the exec command.
func NewExecCommand(rootCmd *RootCommand, app *kingpin.Application) *ExecCommand {
	c := &ExecCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("exec", "Execute a command in a running sandbox.")
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	c.Cmd.Arg("command", "Command to execute (use -- before command).").Required().StringsVar(&c.command)
	c.Cmd.Flag("env", "Environment variables (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("tty", "Allocate a pseudo-TTY.").Short('t').BoolVar(&c.tty)
	c.Cmd.Flag("detach", "Run the command without attaching the terminal.").Short('d').BoolVar(&c.detach)

	return c
}

func (c ExecCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExecCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cmdEnv, err := utilsenv.ParseSpecs(c.envSpecs)
	if err != nil {
		return fmt.Errorf("invalid --env value: %w", err)
	}

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

	svc, err := appexec.NewService(appexec.ServiceConfig{
		Engine:     eng,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, appexec.Request{
		NameOrID: c.nameOrID,
		Command:  c.command,
		Env:      cmdEnv,
		Detached: c.detach,
		TTY:      c.tty,
	})
	if err != nil {
		return fmt.Errorf("could not execute command: %w", err)
	}

	// Exit with the command's exit code.
	os.Exit(result.ExitCode)
	return nil
}
