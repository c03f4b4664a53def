// Package repl implements the interactive custrack shell.
//
// The shell mirrors the browser client: it keeps a current view,
// navigates between views through the auth guard, and dispatches
// command lines to the regular CLI commands.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options configures a shell instance.
type Options struct {
	Input  io.Reader
	Output io.Writer

	// Prompt returns the prompt string, typically including the
	// current view path.
	Prompt func() string

	// Execute dispatches a tokenized command line.
	Execute func(args []string) error

	// Navigate moves to a view path ("go /customers").
	Navigate func(path string) error

	// HistoryFile persists command history between sessions. Empty
	// disables persistence.
	HistoryFile string

	// Commands seeds tab-style completion and the help listing.
	Commands []string
}

// REPL is the interactive shell loop.
type REPL struct {
	opts      Options
	completer *Completer
	history   *History
}

// New creates a shell from options. Missing fields get defaults.
func New(opts Options) *REPL {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Prompt == nil {
		opts.Prompt = func() string { return "custrack> " }
	}
	return &REPL{
		opts:      opts,
		completer: NewCompleter(opts.Commands),
		history:   NewHistory(opts.HistoryFile),
	}
}

// Run reads and dispatches lines until exit or EOF.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.opts.Output, "could not load history: %v\n", err)
	}
	defer r.history.Save()

	reader := bufio.NewReader(r.opts.Input)
	for {
		fmt.Fprint(r.opts.Output, r.opts.Prompt())

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.opts.Output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if done, err := r.dispatch(line); done {
			return err
		}
	}
}

// dispatch handles one line. done reports that the loop should end.
func (r *REPL) dispatch(line string) (done bool, err error) {
	args := Tokenize(line)
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		r.printHelp(args[1:])
		return false, nil
	case "history":
		for _, entry := range r.history.Recent(20) {
			fmt.Fprintln(r.opts.Output, entry)
		}
		return false, nil
	case "go", "open", "cd":
		if r.opts.Navigate == nil {
			fmt.Fprintln(r.opts.Output, "navigation not available")
			return false, nil
		}
		if len(args) < 2 {
			fmt.Fprintln(r.opts.Output, "usage: go PATH")
			return false, nil
		}
		if err := r.opts.Navigate(args[1]); err != nil {
			fmt.Fprintf(r.opts.Output, "%v\n", err)
		}
		return false, nil
	}

	if r.opts.Execute == nil {
		fmt.Fprintf(r.opts.Output, "unknown command: %s\n", args[0])
		return false, nil
	}
	if err := r.opts.Execute(args); err != nil {
		fmt.Fprintf(r.opts.Output, "%v\n", err)
	}
	return false, nil
}

func (r *REPL) printHelp(args []string) {
	if len(args) > 0 {
		for _, s := range r.completer.Complete(args[0]) {
			fmt.Fprintln(r.opts.Output, "  "+s)
		}
		return
	}
	fmt.Fprintln(r.opts.Output, "Commands:")
	for _, cmd := range r.completer.Commands() {
		fmt.Fprintln(r.opts.Output, "  "+cmd)
	}
	fmt.Fprintln(r.opts.Output, "  go PATH    navigate to a view (e.g. go /customers)")
	fmt.Fprintln(r.opts.Output, "  history    show recent commands")
	fmt.Fprintln(r.opts.Output, "  exit       leave the shell")
}

// Tokenize splits a command line into arguments, honoring double
// quotes so values with spaces survive.
func Tokenize(line string) []string {
	var args []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return args
}
