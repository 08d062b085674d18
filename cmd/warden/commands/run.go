package commands

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/docker/go-units"
	"k8s.io/client-go/util/homedir"

	apprun "github.com/wardenhq/warden/internal/app/run"
	"github.com/wardenhq/warden/internal/creds"
	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/printer"
	storageio "github.com/wardenhq/warden/internal/storage/io"
	utilsenv "github.com/wardenhq/warden/internal/utils/env"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	profilePath    string
	name           string
	image          string
	command        []string
	envSpecs       []string
	privileged     bool
	noFuse         bool
	selinuxDisable bool
	memory         string
	cpus           float64
	copyClaude     bool
	copyCodex      bool
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Launch a new agent sandbox.")
	c.Cmd.Flag("profile", "Launch profile YAML file. Flags override profile values.").Short('p').StringVar(&c.profilePath)
	c.Cmd.Flag("name", "Sandbox name. Generated when empty.").StringVar(&c.name)
	c.Cmd.Flag("image", "Container image to run.").StringVar(&c.image)
	c.Cmd.Flag("env", "Environment variables (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("privileged", "Run the container privileged. Disables all minimal-mode hardening.").BoolVar(&c.privileged)
	c.Cmd.Flag("no-fuse", "Do not mount /dev/fuse into the container.").BoolVar(&c.noFuse)
	c.Cmd.Flag("selinux-disable", "Disable SELinux separation for the container.").BoolVar(&c.selinuxDisable)
	c.Cmd.Flag("memory", "Memory limit, human readable (512m, 2g).").StringVar(&c.memory)
	c.Cmd.Flag("cpus", "CPU limit in cores (1.5 = one and a half cores).").Float64Var(&c.cpus)
	c.Cmd.Flag("copy-claude", "Copy the host ~/.claude credentials into the sandbox.").BoolVar(&c.copyClaude)
	c.Cmd.Flag("copy-codex", "Copy the host ~/.codex credentials into the sandbox.").BoolVar(&c.copyCodex)
	c.Cmd.Arg("command", "Command the container runs (use -- before command).").StringsVar(&c.command)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	profile, err := c.buildProfile(ctx)
	if err != nil {
		return err
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

	planner, err := creds.NewHomePlanner(homedir.HomeDir(), logger)
	if err != nil {
		return fmt.Errorf("could not create credential planner: %w", err)
	}

	svc, err := apprun.NewService(apprun.ServiceConfig{
		Engine:     eng,
		Repository: repo,
		Planner:    planner,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	sb, err := svc.Run(ctx, apprun.Request{Profile: profile})
	if err != nil {
		return fmt.Errorf("could not launch sandbox: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Sandbox %s launched (container %s)", sb.Name, sb.ContainerID))
}

// buildProfile merges the profile file (when given) with the command flags,
// flags winning.
func (c RunCommand) buildProfile(ctx context.Context) (model.LaunchProfile, error) {
	profile := model.LaunchProfile{Security: model.DefaultSecurityOptions()}

	if c.profilePath != "" {
		abs, err := filepath.Abs(c.profilePath)
		if err != nil {
			return model.LaunchProfile{}, fmt.Errorf("invalid profile path: %w", err)
		}
		repo := storageio.NewProfileYAMLRepository(os.DirFS(filepath.Dir(abs)))
		profile, err = repo.GetProfile(ctx, filepath.Base(abs))
		if err != nil {
			return model.LaunchProfile{}, fmt.Errorf("could not load profile: %w", err)
		}
	}

	if c.name != "" {
		profile.Name = c.name
	}
	if c.image != "" {
		profile.Image = c.image
	}
	if len(c.command) > 0 {
		profile.Cmd = c.command
	}

	if len(c.envSpecs) > 0 {
		cliEnv, err := utilsenv.ParseSpecs(c.envSpecs)
		if err != nil {
			return model.LaunchProfile{}, fmt.Errorf("invalid --env value: %w", err)
		}
		profile.Env = utilsenv.MergeMaps(profile.Env, cliEnv)
	}

	if c.privileged {
		profile.Security.Privileged = true
	}
	if c.noFuse {
		profile.Security.MountDevFuse = false
	}
	if c.selinuxDisable {
		profile.Security.SELinuxLabel = model.SELinuxDisableForContainer
	}

	if c.memory != "" {
		mem, err := units.RAMInBytes(c.memory)
		if err != nil {
			return model.LaunchProfile{}, fmt.Errorf("invalid --memory value: %w", err)
		}
		profile.Resources.MemoryBytes = mem
	}
	if c.cpus > 0 {
		profile.Resources.NanoCPUs = int64(math.Round(c.cpus * 1e9))
	}

	if c.copyClaude {
		profile.Credentials.CopyClaude = true
	}
	if c.copyCodex {
		profile.Credentials.CopyCodex = true
	}

	return profile, nil
}
