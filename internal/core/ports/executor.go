package ports

import "context"

// Executor runs the command that consumes finished trees.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs argv in dir with env appended to the process environment.
	Execute(ctx context.Context, argv []string, dir string, env []string) error
}
