package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/incantata/internal/batch"
	"github.com/leapstack-labs/incantata/internal/cli/config"
	"github.com/leapstack-labs/incantata/internal/cli/output"
	"github.com/leapstack-labs/incantata/internal/watch"
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/random"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const replPrompt = "incantata> "

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	Watch   bool
	History string
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Generate words interactively",
		Long: `Start an interactive session that prints a batch of words, then another
batch every time you press Enter.

Dot commands change the session: .count, .seed, .hyphenate, .capitalize,
.structure and .help. With --watch the config file is reloaded whenever it
changes, so you can tune a structure and see the effect immediately.

When standard input is not a terminal every input line prints a batch,
which makes the command usable in pipes.`,
		Example: `  # Start a session
  incantata repl

  # Reload incantata.yaml on every save
  incantata repl --watch

  # Three batches of five words, non-interactively
  printf '\n\n' | incantata repl -n 5 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().IntP("count", "n", config.DefaultCount, "Words per batch")
	cmd.Flags().Bool("hyphenate", false, "Separate syllables with hyphens")
	cmd.Flags().Bool("capitalize", false, "Capitalize each word")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload the config file when it changes")
	cmd.Flags().StringVar(&opts.History, "history", "", "History file (default: user cache dir)")
	addBatchFlags(cmd)
	addStructureFlags(cmd)

	return cmd
}

// replSession is the mutable state of a REPL. The watcher goroutine
// replaces the structure while the input loop generates words, so all
// fields are guarded by mu.
type replSession struct {
	mu         sync.Mutex
	cmdCtx     *CommandContext
	structure  *core.Structure
	base       batch.Config
	seed       uint64
	batches    uint64
	count      int
	hyphenate  bool
	capitalize bool

	// Settings changed with dot commands survive config reloads.
	countSet      bool
	hyphenateSet  bool
	capitalizeSet bool
}

func newREPLSession(cmdCtx *CommandContext) (*replSession, error) {
	s := &replSession{cmdCtx: cmdCtx}
	if err := s.apply(cmdCtx.Cfg); err != nil {
		return nil, err
	}
	s.seed = cmdCtx.Cfg.Seed
	if s.seed == 0 {
		s.seed = random.New().Seed()
	}
	return s, nil
}

// apply replaces the structure and batch settings from cfg. Count and
// formatting changed during the session are kept.
func (s *replSession) apply(cfg *config.Config) error {
	cmdCtx := &CommandContext{Cfg: cfg, Logger: s.cmdCtx.Logger, Renderer: s.cmdCtx.Renderer}
	structure, err := cmdCtx.Structure()
	if err != nil {
		return err
	}
	base, err := cmdCtx.BatchConfig(structure, cfg.Count)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.structure = structure
	s.base = base
	if !s.countSet {
		s.count = cfg.Count
	}
	if !s.hyphenateSet {
		s.hyphenate = cfg.Hyphenate
	}
	if !s.capitalizeSet {
		s.capitalize = cfg.Capitalize
	}
	return nil
}

// next prints one batch. Batch i of a session uses seed+i, so a session
// started with the same seed replays the same words.
func (s *replSession) next(ctx context.Context) error {
	s.mu.Lock()
	cfg := s.base
	cfg.Count = s.count
	cfg.Seed = s.seed + s.batches
	s.batches++
	view := &config.Config{Hyphenate: s.hyphenate, Capitalize: s.capitalize}
	s.mu.Unlock()

	res, err := batch.Run(ctx, cfg)
	if err != nil {
		return err
	}
	renderWords(s.cmdCtx.Renderer, view, res)
	return nil
}

// handle processes one input line and reports whether the session ends.
func (s *replSession) handle(ctx context.Context, line string) bool {
	r := s.cmdCtx.Renderer
	line = strings.TrimSpace(line)

	if !strings.HasPrefix(line, ".") {
		if err := s.next(ctx); err != nil {
			r.Error(err.Error())
		}
		return false
	}

	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".structure":
		s.mu.Lock()
		structure := s.structure.Clone()
		s.mu.Unlock()
		renderStructure(r, structure)

	case ".count":
		if arg == "" {
			s.mu.Lock()
			r.Printf("count = %d\n", s.count)
			s.mu.Unlock()
			return false
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			r.Error(fmt.Sprintf("invalid count %q: want a positive integer", arg))
			return false
		}
		s.mu.Lock()
		s.count, s.countSet = n, true
		s.mu.Unlock()

	case ".seed":
		if arg == "" {
			s.mu.Lock()
			r.Printf("seed = %d\n", s.seed)
			s.mu.Unlock()
			return false
		}
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil || n == 0 {
			r.Error(fmt.Sprintf("invalid seed %q: want a positive integer", arg))
			return false
		}
		s.mu.Lock()
		s.seed, s.batches = n, 0
		s.mu.Unlock()

	case ".hyphenate":
		s.mu.Lock()
		s.hyphenate, s.hyphenateSet = !s.hyphenate, true
		r.Printf("hyphenate = %t\n", s.hyphenate)
		s.mu.Unlock()

	case ".capitalize":
		s.mu.Lock()
		s.capitalize, s.capitalizeSet = !s.capitalize, true
		r.Printf("capitalize = %t\n", s.capitalize)
		s.mu.Unlock()

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func runREPL(cmd *cobra.Command, opts *REPLOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	session, err := newREPLSession(cmdCtx)
	if err != nil {
		return err
	}

	in, interactive, err := newLineReader(cmd, opts.History)
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = in.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	eg, egctx := errgroup.WithContext(ctx)

	if opts.Watch {
		w, err := newConfigWatcher(cmd, session)
		if err != nil {
			return err
		}
		eg.Go(func() error { return w.Run(egctx) })
	}

	if interactive {
		r.Header(1, "incantata")
		r.Println(r.Muted("Press Enter for more words. Type .help for commands, .quit to exit."))
		r.Println("")
	}

	// The first batch is printed right away.
	if err := session.next(egctx); err != nil {
		r.Error(err.Error())
	}

	for {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			cancel()
			_ = eg.Wait()
			return err
		}
		if session.handle(egctx, line) {
			break
		}
	}

	cancel()
	return eg.Wait()
}

// newConfigWatcher reloads the config file into session when it changes.
func newConfigWatcher(cmd *cobra.Command, session *replSession) (*watch.Watcher, error) {
	cmdCtx := session.cmdCtx
	cfgFile := config.GetConfigFileUsed()
	if cfgFile == "" {
		return nil, fmt.Errorf("--watch needs a config file; run 'incantata init' to create one")
	}

	profile := cmdCtx.Cfg.Profile
	return watch.New(watch.Config{
		Files:  []string{cfgFile},
		Logger: cmdCtx.Logger,
		OnChange: func(file string) {
			r := cmdCtx.Renderer
			cfg, err := config.LoadConfigWithProfile(file, profile, cmd.Flags())
			if err == nil {
				err = session.apply(cfg)
			}
			if err != nil {
				r.Error("reload failed, keeping the previous structure: " + describeError(err))
				return
			}
			cmdCtx.Logger.Info("config reloaded", "file", file)
			r.Println(r.Muted("config reloaded"))
		},
	})
}

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// newLineReader returns a readline instance for terminals and a plain
// line scanner otherwise.
func newLineReader(cmd *cobra.Command, historyFile string) (lineReader, bool, error) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &scanReader{sc: bufio.NewScanner(cmd.InOrStdin())}, false, nil
	}

	if historyFile == "" {
		historyFile = defaultHistoryFile()
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           f,
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, false, err
	}
	return rl, true, nil
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "incantata")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

type scanReader struct {
	sc *bufio.Scanner
}

func (s *scanReader) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) Close() error { return nil }

func newDotCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".structure"),
		readline.PcItem(".count"),
		readline.PcItem(".seed"),
		readline.PcItem(".hyphenate"),
		readline.PcItem(".capitalize"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  (empty line)    Print another batch of words
  .count [n]      Show or set the words per batch
  .seed [n]       Show or set the seed; restarts the sequence
  .hyphenate      Toggle syllable separators
  .capitalize     Toggle capitalized words
  .structure      Show the active structure
  .help           Show this help message
  .quit / .exit   Exit the REPL
`
	_, _ = fmt.Fprintln(w, help)
}

// renderStructure prints the segments of s as a table.
func renderStructure(r *output.Renderer, s *core.Structure) {
	rows := make([][]any, 0, len(core.SegmentKinds))
	for _, kind := range core.SegmentKinds {
		seg := s.Segment(kind)
		rows = append(rows, []any{kind.String(), seg.Len, seg.Probability(), summarizeDict(seg.Dict)})
	}
	r.Table([]string{"Segment", "Len", "Continue", "Dictionary"}, rows)
	r.Printf("min_len = %d, suggested_len = %d\n", s.MinLen, s.SuggestedLen)
}

// summarizeDict shortens long dictionaries for display.
func summarizeDict(entries []string) string {
	const maxShown = 24
	if len(entries) <= maxShown {
		return strings.Join(entries, " ")
	}
	return strings.Join(entries[:maxShown], " ") + fmt.Sprintf(" … (%d entries)", len(entries))
}
