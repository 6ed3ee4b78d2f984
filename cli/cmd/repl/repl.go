// Package repl implements the interactive dice rolling session, with
// persistent history, command completion, and parse tree inspection.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/roll/cli/view"
	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

const evalPrompt = "➜ "

// commandPrefix marks an input line as a session command instead of a
// dice expression.
const commandPrefix = ":"

func helpMessage() string {
	return `
Commands (prefix with ` + commandPrefix + `):

  help           Print this cruft
  explain EXPR   Print the parse tree of an expression
  seed N         Reseed the roller (deterministic from here on)
  clear          Clear screen
  quit           Exit session

Usage:
  Type a dice expression to roll it: 4d6kh3 + 2
  Command completions appear after typing ` + commandPrefix + `
  Press Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on an empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// formatEcho formats the echoed input line with prompt and input styled.
func formatEcho(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// Options configures an interactive session.
type Options struct {
	CacheDir string
	Seed     *uint64
	Logger   log.Logger
}

// Run starts the interactive session and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	opts.Logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", opts.CacheDir),
		slog.Bool("seeded", opts.Seed != nil),
	)

	history := NewHistory(filepath.Join(opts.CacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	opts.Logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, opts, history)

	p := tea.NewProgram(m, tea.WithContext(ctx))

	_, err := p.Run()

	return err
}

const defaultWidth = 80

// model is the Bubble Tea model for the session.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	logger     log.Logger
	history    *History
	historyIdx int
	rng        rand.Source // nil until a seed is set
	completer  *completer
	seq        int // 1-based index of the next roll
	width      int
	quitting   bool
}

func newModel(ctx context.Context, opts Options, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	var rng rand.Source
	if opts.Seed != nil {
		rng = rand.NewPCG(*opts.Seed, *opts.Seed)
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		logger:     opts.Logger,
		history:    history,
		historyIdx: history.Len(),
		rng:        rng,
		completer:  newCompleter(),
		seq:        1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		pos := m.historyIdx + 1
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d/%d", pos, m.history.Len()),
		))
		b.WriteString("\n")

	case strings.HasPrefix(input, commandPrefix):
		b.WriteString(m.completer.view(input))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(
			"Type a dice expression, or " + commandPrefix + "help for commands",
		))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.historyIdx = m.history.Len()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		return m.executeInput()

	case tea.KeyTab:
		if completed, ok := m.completer.cycle(m.input.Value()); ok {
			m.input.SetValue(completed)
			m.input.CursorEnd()
		}

		return m, nil

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()
	}

	var cmd tea.Cmd

	// Typing resets history navigation and tab cycling.
	m.historyIdx = m.history.Len()
	m.completer.reset()
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx <= 0 {
		return m, nil
	}

	m.historyIdx--

	if line, err := m.history.GetLine(m.historyIdx); err == nil {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx >= m.history.Len() {
		return m, nil
	}

	m.historyIdx++

	if m.historyIdx == m.history.Len() {
		m.input.SetValue("")

		return m, nil
	}

	if line, err := m.history.GetLine(m.historyIdx); err == nil {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	return m, nil
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.completer.reset()

	_, _ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	if rest, ok := strings.CutPrefix(input, commandPrefix); ok {
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", input),
		)

		return m.executeCommand(rest)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
	)

	return m.evaluate(input)
}

func (m model) evaluate(input string) (model, tea.Cmd) {
	echo := tea.Println(formatEcho(input))

	expr, err := lang.Parse(m.ctxFunc(), input, lang.WithLogger(m.logger))
	if err != nil {
		return m, tea.Sequence(echo, printError(err))
	}

	value, err := lang.EvalWith(expr, m.rng)
	if err != nil {
		return m, tea.Sequence(echo, printError(err))
	}

	line := fmt.Sprintf("#%d  %s", m.seq, renderResult(value))
	m.seq++

	return m, tea.Sequence(echo, tea.Println(line))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatEcho(commandPrefix + input))

	switch parts[0] {
	case "help":
		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(helpMessage())))

	case "explain":
		if len(parts) < 2 {
			return m, tea.Sequence(echo, printError(ErrMissingArgument))
		}

		return m, tea.Sequence(
			echo,
			m.explain(strings.Join(parts[1:], " ")),
		)

	case "seed":
		if len(parts) != 2 {
			return m, tea.Sequence(echo, printError(ErrMissingArgument))
		}

		seed, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return m, tea.Sequence(echo, printError(err))
		}

		m.rng = rand.NewPCG(seed, seed)

		return m, tea.Sequence(
			echo,
			tea.Println(hintStyle.Render("seeded with "+parts[1])),
		)

	case "clear":
		return m, tea.Sequence(echo, tea.ClearScreen)

	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	default:
		return m, tea.Sequence(
			echo,
			printError(ErrUnknownCommand),
			tea.Println(hintStyle.Render(
				"try " + commandPrefix + "help",
			)),
		)
	}
}

func (m model) explain(input string) tea.Cmd {
	expr, err := lang.Parse(m.ctxFunc(), input, lang.WithLogger(m.logger))
	if err != nil {
		return printError(err)
	}

	tree, err := view.Tree(expr, view.DefaultPalette)
	if err != nil {
		return printError(err)
	}

	return tea.Println(strings.TrimRight(tree, "\n"))
}

func printError(err error) tea.Cmd {
	return tea.Println(errorStyle.Render("error: " + err.Error()))
}

// renderResult renders an evaluation result: integers plainly, lists as
// their sum followed by the individual elements.
func renderResult(v lang.Value) string {
	if v.Kind == lang.KindInteger {
		return resultStyle.Render(strconv.FormatInt(v.Int, 10))
	}

	return resultStyle.Render(strconv.FormatInt(v.Sum(), 10)) +
		detailStyle.Render(
			"  from "+strconv.Itoa(len(v.List))+" rolls: "+v.String(),
		)
}
