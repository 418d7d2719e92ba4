package app

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/op/go-logging"
	"github.com/shini4i/tempdirectory/cmd/tempdirectory/utils"
	"github.com/shini4i/tempdirectory/internal/ports"
	"github.com/shini4i/tempdirectory/internal/tempdir"
	"github.com/spf13/afero"
)

// RootEnv is exported to commands started by Exec and points at their directory.
const RootEnv = "TEMPDIRECTORY_ROOT"

// Dependencies aggregates runtime collaborators required by App.
type Dependencies struct {
	FS        afero.Fs
	CmdRunner ports.CmdRunner
	Globber   ports.Globber
	Clock     clockwork.Clock
	Logger    *logging.Logger
	Out       io.Writer
}

// App runs the CLI workflows on top of tempdir handles.
type App struct {
	cfg       Config
	fs        afero.Fs
	cmdRunner ports.CmdRunner
	globber   ports.Globber
	clock     clockwork.Clock
	logger    *logging.Logger
	out       io.Writer
}

// New constructs an App using the supplied configuration and dependencies.
func New(cfg Config, deps Dependencies) (*App, error) {
	if cfg.TempBase == "" {
		return nil, errors.New("temp base directory must be provided")
	}

	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.CmdRunner == nil {
		deps.CmdRunner = &utils.RealCmdRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	}
	if deps.Globber == nil {
		deps.Globber = utils.CustomGlobber{}
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Logger == nil {
		return nil, errors.New("logger must be provided")
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	return &App{
		cfg:       cfg,
		fs:        deps.FS,
		cmdRunner: deps.CmdRunner,
		globber:   deps.Globber,
		clock:     deps.Clock,
		logger:    deps.Logger,
		out:       deps.Out,
	}, nil
}

// Exec runs command inside a fresh temporary directory and removes the
// directory afterwards unless Keep is set. The command's error is returned
// unchanged so callers can inspect its exit status.
func (a *App) Exec(command []string) (err error) {
	if len(command) == 0 {
		return errors.New("command must be provided")
	}

	a.logger.Debugf("===> Running tempdirectory version [%s]", cyan(a.cfg.Version))

	handle, err := tempdir.New(a.cfg.Name, a.handleOptions()...)
	if err != nil {
		return err
	}

	defer func() {
		if a.cfg.Keep {
			a.logger.Infof("===> Keeping temporary directory [%s]", cyan(handle.Root()))
			return
		}
		if closeErr := handle.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	a.logger.Infof("===> Running [%s] in [%s]", cyan(strings.Join(command, " ")), cyan(handle.Root()))

	env := append(os.Environ(), RootEnv+"="+handle.Root())
	runErr := a.cmdRunner.Run(handle.Root(), env, command[0], command[1:]...)

	if a.cfg.Inventory {
		if invErr := a.printInventory(handle.Root()); invErr != nil {
			return errors.Join(runErr, invErr)
		}
	}

	return runErr
}

// Remove deletes every path recursively. All paths are attempted; failures are joined.
func (a *App) Remove(paths []string) error {
	if len(paths) == 0 {
		return errors.New("at least one path must be provided")
	}

	var errs []error
	for _, path := range paths {
		a.logger.Infof("===> Removing [%s]", cyan(path))
		if err := tempdir.RemoveRecursiveFs(a.fs, path); err != nil {
			a.logger.Errorf("▶ %s", red(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (a *App) handleOptions() []tempdir.Option {
	return []tempdir.Option{
		tempdir.WithFs(a.fs),
		tempdir.WithClock(a.clock),
		tempdir.WithLogger(a.logger),
		tempdir.WithTempBase(a.cfg.TempBase),
	}
}
