package starlark

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// AcceptFunc is the global every filter script must define.
const AcceptFunc = "accept"

// ErrNoAccept is returned when a script does not define a callable accept.
var ErrNoAccept = errors.New("filter script must define accept(word)")

// Program is a loaded filter script. Its globals are frozen, so a Program
// can be shared by any number of Filters running on different goroutines.
type Program struct {
	name   string
	accept starlark.Callable
	logger *slog.Logger
}

// Compile executes src once and looks up its accept function.
func Compile(name string, src []byte, info *StructureInfo, logger *slog.Logger) (*Program, error) {
	predeclared := Predeclared(info)
	predeclared.Freeze()

	thread := newThread(name, logger)
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, name, src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter %s: %w", name, err)
	}

	fn, ok := globals[AcceptFunc].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoAccept)
	}

	return &Program{name: name, accept: fn, logger: logger}, nil
}

// Load reads and compiles the filter script at path.
func Load(path string, info *StructureInfo, logger *slog.Logger) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter: %w", err)
	}
	return Compile(path, src, info, logger)
}

// Name returns the script name used in error messages.
func (p *Program) Name() string { return p.name }

// NewFilter returns a Filter bound to a dedicated thread.
func (p *Program) NewFilter() *Filter {
	return &Filter{program: p, thread: newThread(p.name, p.logger)}
}

// Filter evaluates a Program on one thread. A Filter is not safe for
// concurrent use; give each goroutine its own.
type Filter struct {
	program *Program
	thread  *starlark.Thread
}

// Accept reports whether the script keeps word.
func (f *Filter) Accept(word string) (bool, error) {
	return call(f.thread, f.program.accept, word)
}

func call(thread *starlark.Thread, fn starlark.Callable, word string) (bool, error) {
	thread.Uncancel()
	thread.SetMaxExecutionSteps(thread.ExecutionSteps() + maxSteps)

	v, err := starlark.Call(thread, fn, starlark.Tuple{starlark.String(word)}, nil)
	if err != nil {
		return false, fmt.Errorf("%s(%q): %w", AcceptFunc, word, err)
	}
	b, ok := v.(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("%s(%q) returned %s, want bool", AcceptFunc, word, v.Type())
	}
	return bool(b), nil
}
