package repl

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// commands lists every session command, in the order the candidate bar
// presents them.
var commands = []string{"help", "explain", "seed", "clear", "quit", "exit"}

var (
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

// completer fuzzy-matches session commands and cycles through the
// candidates on successive Tab presses. Any edit to the input resets
// the cycle.
type completer struct {
	matches []string
	index   int
	cycling bool
}

func newCompleter() *completer {
	return &completer{}
}

// reset abandons any cycle in progress.
func (c *completer) reset() {
	c.matches = nil
	c.index = 0
	c.cycling = false
}

// candidates returns the command names matching query, all commands
// when the query is empty.
func candidates(query string) []string {
	if query == "" {
		return slices.Clone(commands)
	}

	found := fuzzy.Find(query, commands)

	names := make([]string, len(found))
	for i, m := range found {
		names[i] = m.Str
	}

	return names
}

// cycle returns the input with its command word replaced by the next
// matching candidate. It reports false when the input is not a command
// or nothing matches.
func (c *completer) cycle(input string) (string, bool) {
	rest, ok := strings.CutPrefix(input, commandPrefix)
	if !ok {
		return "", false
	}

	if !c.cycling {
		c.matches = candidates(strings.TrimSpace(rest))
		c.index = 0
		c.cycling = true
	} else {
		c.index = (c.index + 1) % max(len(c.matches), 1)
	}

	if len(c.matches) == 0 {
		return "", false
	}

	return commandPrefix + c.matches[c.index] + " ", true
}

// view renders the candidate bar shown beneath the input line while a
// command is being typed. Matched runes are highlighted; the candidate
// a Tab press would select next is emphasized.
func (c *completer) view(input string) string {
	query := strings.TrimSpace(strings.TrimPrefix(input, commandPrefix))

	if query == "" {
		parts := make([]string, len(commands))
		for i, name := range commands {
			parts[i] = c.renderCandidate(name, nil, i)
		}

		return strings.Join(parts, "  ")
	}

	found := fuzzy.Find(query, commands)
	if len(found) == 0 {
		return candidateStyle.Render("no matching command")
	}

	parts := make([]string, len(found))
	for i, m := range found {
		parts[i] = c.renderCandidate(m.Str, m.MatchedIndexes, i)
	}

	return strings.Join(parts, "  ")
}

func (c *completer) renderCandidate(name string, matched []int, pos int) string {
	if c.cycling && pos == c.index {
		return selectedStyle.Render(name)
	}

	var sb strings.Builder
	for i, r := range name {
		if slices.Contains(matched, i) {
			sb.WriteString(matchedStyle.Render(string(r)))
		} else {
			sb.WriteString(candidateStyle.Render(string(r)))
		}
	}

	return sb.String()
}
