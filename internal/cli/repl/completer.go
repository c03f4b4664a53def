package repl

import (
	"sort"
	"strings"
)

// Completer suggests commands by prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the given command names.
func NewCompleter(commands []string) *Completer {
	out := make([]string, len(commands))
	copy(out, commands)
	sort.Strings(out)
	return &Completer{commands: out}
}

// Commands returns the full sorted command list.
func (c *Completer) Commands() []string {
	return c.commands
}

// Complete returns all commands starting with prefix.
func (c *Completer) Complete(prefix string) []string {
	var out []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}
