package command

import (
	"errors"
	"time"

	"github.com/shini4i/tempdirectory/internal/app"
	"github.com/shini4i/tempdirectory/internal/helpers"
	"github.com/spf13/cobra"
)

const (
	nameEnv     = "TEMPDIRECTORY_NAME"
	tempBaseEnv = "TEMPDIRECTORY_BASE"
)

// Options describes the collaborators and defaults required to build the CLI.
type Options struct {
	Version     string
	TempDirBase string
	RunExec     func(cfg app.Config, command []string) error
	RunRemove   func(cfg app.Config, paths []string) error
	RunPrune    func(cfg app.Config) error
	InitLogging func(debug bool)
}

// Execute builds and runs the Cobra command tree using the supplied options.
func Execute(opts Options, args []string) error {
	root := newRootCommand(opts)

	if args != nil {
		root.SetArgs(args)
	}

	return root.Execute()
}

// newRootCommand builds the root Cobra command with global flags and hooks.
func newRootCommand(opts Options) *cobra.Command {
	var (
		debug    bool
		tempBase string
	)

	root := &cobra.Command{
		Use:           "tempdirectory",
		Short:         "Run commands in self-cleaning temporary directories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.InitLogging != nil {
				opts.InitLogging(debug)
			}
			return nil
		},
	}

	root.Version = opts.Version
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")
	root.PersistentFlags().StringVar(&tempBase, "base", helpers.GetEnv(tempBaseEnv, opts.TempDirBase), "Base directory for temporary directories")

	global := func() []app.ConfigOption {
		return []app.ConfigOption{
			app.WithTempBase(tempBase),
			app.WithDebug(debug),
			app.WithVersion(opts.Version),
		}
	}

	root.AddCommand(
		newExecCommand(opts, global),
		newRemoveCommand(opts, global),
		newPruneCommand(opts, global),
	)

	return root
}

// newExecCommand runs a child command inside a fresh temporary directory.
func newExecCommand(opts Options, global func() []app.ConfigOption) *cobra.Command {
	var (
		name      string
		inventory bool
		keep      bool
	)

	cmd := &cobra.Command{
		Use:   "exec [flags] -- <command> [args...]",
		Short: "Run a command inside a temporary directory that is removed afterwards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(append(global(),
				app.WithName(name),
				app.WithInventory(inventory),
				app.WithKeep(keep),
			)...)
			if err != nil {
				return err
			}

			if opts.RunExec == nil {
				return errors.New("no exec handler provided")
			}

			return opts.RunExec(cfg, args)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&name, "name", "n", helpers.GetEnv(nameEnv, ""), "Name hint used to derive the directory name")
	cmd.Flags().BoolVar(&inventory, "inventory", false, "Print a YAML inventory of files left behind before removal")
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the directory after the command exits")

	return cmd
}

// newRemoveCommand removes paths recursively, tolerating restrictive modes.
func newRemoveCommand(opts Options, global func() []app.ConfigOption) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files and directories recursively without following symlinks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(global()...)
			if err != nil {
				return err
			}

			if opts.RunRemove == nil {
				return errors.New("no remove handler provided")
			}

			return opts.RunRemove(cfg, args)
		},
	}
}

// newPruneCommand removes directories leaked by handles that were never closed.
func newPruneCommand(opts Options, global func() []app.ConfigOption) *cobra.Command {
	var (
		olderThan time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove abandoned temporary directories from the base directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(append(global(),
				app.WithMaxAge(olderThan),
				app.WithDryRun(dryRun),
			)...)
			if err != nil {
				return err
			}

			if opts.RunPrune == nil {
				return errors.New("no prune handler provided")
			}

			return opts.RunPrune(cfg)
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", app.DefaultMaxAge, "Minimum age of directories to remove")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the directories that would be removed")

	return cmd
}
