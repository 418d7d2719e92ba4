package ports

//go:generate mockgen -source=ports.go -destination=../mocks/ports.go -package=mocks

// CmdRunner executes a command inside a working directory with the given environment.
type CmdRunner interface {
	Run(dir string, env []string, cmd string, args ...string) error
}

// Globber expands filesystem patterns into matching paths.
type Globber interface {
	Glob(pattern string) ([]string, error)
}
