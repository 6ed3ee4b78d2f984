package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleTrace = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l < slog.LevelDebug:
		return styleTrace
	case l < slog.LevelInfo:
		return styleDebug
	case l < slog.LevelWarn:
		return styleInfo
	case l < slog.LevelError:
		return styleWarn
	}

	return styleErr
}

// prettyHandler renders records as single colorized lines for terminals:
//
//	3:04PM INFO message key=value nested.key=value
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		a := h.replace(slog.Time(slog.TimeKey, r.Time))
		if !a.Equal(slog.Attr{}) {
			sb.WriteString(styleDim.Render(a.Value.String()))
			sb.WriteByte(' ')
		}
	}

	a := h.replace(slog.Any(slog.LevelKey, r.Level))
	sb.WriteString(levelStyle(r.Level).Render(a.Value.String()))
	sb.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			sb.WriteString(styleDim.Render(
				src.File + ":" + strconv.Itoa(src.Line),
			))
			sb.WriteByte(' ')
		}
	}

	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&sb, h.groups, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&sb, h.groups, a)

		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, sb.String())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &clone
}

// replace applies the configured ReplaceAttr to a built-in attribute.
func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// writeAttr renders one attribute as ` key=value`, flattening groups
// into dotted key prefixes and resolving LogValuer values.
func (h *prettyHandler) writeAttr(
	sb *strings.Builder, groups []string, a slog.Attr,
) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(sb, inner, g)
		}

		return
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	sb.WriteByte(' ')
	sb.WriteString(styleKey.Render(key))
	sb.WriteString(styleDim.Render("="))
	sb.WriteString(valueString(a.Value))
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}

		return s

	default:
		return fmt.Sprint(v.Any())
	}
}
