package utils

import (
	"io"
	"os/exec"
)

// RealCmdRunner executes commands using the operating system and connects
// them to the configured streams.
type RealCmdRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd with args inside dir. A nil env inherits the current environment.
func (r *RealCmdRunner) Run(dir string, env []string, cmd string, args ...string) error {
	command := exec.Command(cmd, args...)
	command.Dir = dir
	command.Env = env
	command.Stdin = r.Stdin
	command.Stdout = r.Stdout
	command.Stderr = r.Stderr

	return command.Run()
}
