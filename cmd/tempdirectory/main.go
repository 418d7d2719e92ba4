package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/op/go-logging"
	"github.com/shini4i/tempdirectory/cmd/tempdirectory/command"
	"github.com/shini4i/tempdirectory/internal/app"
)

var (
	version = "local"
	log     = logging.MustGetLogger("tempdirectory")
	format  = logging.MustStringFormatter(
		`%{color}%{message}%{color:reset}`,
	)
)

func main() {
	err := command.Execute(command.Options{
		Version:     version,
		TempDirBase: os.TempDir(),
		RunExec:     runExec,
		RunRemove:   runRemove,
		RunPrune:    runPrune,
		InitLogging: func(debug bool) { initLogging(os.Stderr, debug) },
	}, nil)

	os.Exit(exitCode(err))
}

func initLogging(w io.Writer, debug bool) {
	backend := logging.NewLogBackend(w, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))

	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.INFO, "")
	}

	logging.SetBackend(leveled)
}

func newApp(cfg app.Config) (*app.App, error) {
	return app.New(cfg, app.Dependencies{Logger: log})
}

func runExec(cfg app.Config, command []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	return a.Exec(command)
}

func runRemove(cfg app.Config, paths []string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	return a.Remove(paths)
}

func runPrune(cfg app.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	_, err = a.Prune()
	return err
}

// exitCode mirrors the exit status of a failed child command; any other
// error is printed and mapped to 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	fmt.Fprintln(os.Stderr, err)
	return 1
}
