package starlark

import (
	"log/slog"

	"go.starlark.net/starlark"
)

// maxSteps bounds a single accept() call so a runaway script cannot hang
// generation.
const maxSteps = 1_000_000

// newThread returns a thread whose print() output goes to logger at debug
// level.
func newThread(name string, logger *slog.Logger) *starlark.Thread {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	thread := &starlark.Thread{
		Name: name,
		Print: func(th *starlark.Thread, msg string) {
			logger.Debug("filter print", "thread", th.Name, "msg", msg)
		},
	}
	thread.SetMaxExecutionSteps(maxSteps)
	return thread
}
