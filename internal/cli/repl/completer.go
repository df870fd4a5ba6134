package repl

import (
	"sort"
	"strings"
)

// Completer suggests command lines for a prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over commands plus the shell built-ins.
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]bool, len(commands)+len(builtins))
	all := make([]string, 0, len(commands)+len(builtins))
	for _, list := range [][]string{commands, builtins} {
		for _, c := range list {
			if c != "" && !seen[c] {
				seen[c] = true
				all = append(all, c)
			}
		}
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns every command starting with prefix. Runs of spaces in
// the prefix are collapsed. An empty prefix matches nothing.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.Join(strings.Fields(prefix), " ")
	if prefix == "" {
		return nil
	}
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
