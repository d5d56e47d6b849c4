package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const timeFormat = "15:04:05"

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Level is the minimum level logged. Nil means Info.
	Level slog.Leveler
	// Color selects colored output. The zero value is ColorAuto.
	Color ColorMode
}

// Handler writes one line per record for a person reading a terminal:
//
//	09:26:53 WARN  link does not resolve linkcheck.link=/guide/intor
//
// Groups become dotted key prefixes. String values containing spaces,
// quotes or equals signs are quoted.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	colors *palette

	// prefix is the dotted group path applied to record attributes.
	prefix string
	// attrs holds attributes added by WithAttrs, already formatted.
	attrs string
}

type palette struct {
	time, key                *color.Color
	trace, debug, info, warn *color.Color
	err                      *color.Color
}

func newPalette() *palette {
	p := &palette{
		time:  color.New(color.FgHiBlack),
		key:   color.New(color.FgCyan),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.time, p.key, p.trace, p.debug, p.info, p.warn, p.err} {
		c.EnableColor()
	}
	return p
}

func (p *palette) forLevel(l slog.Level) *color.Color {
	if p == nil {
		return nil
	}
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	}
	return p.trace
}

func (p *palette) paint(pick func(*palette) *color.Color, s string) string {
	if p == nil {
		return s
	}
	return pick(p).Sprint(s)
}

// NewHandler returns a Handler writing to out.
func NewHandler(out io.Writer, opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	h := &Handler{
		level: opts.Level,
		out:   out,
		mu:    &sync.Mutex{},
	}
	if h.level == nil {
		h.level = slog.LevelInfo
	}
	if opts.Color.Enabled(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether level is at or above the handler's minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.colors.paint(func(p *palette) *color.Color { return p.time }, r.Time.Format(timeFormat)))
		b.WriteByte(' ')
	}

	level := LevelName(r.Level)
	if pad := 5 - len(level); pad > 0 {
		level += strings.Repeat(" ", pad)
	}
	if c := h.colors.forLevel(r.Level); c != nil {
		level = c.Sprint(level)
	}
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(r.Message)

	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, prefix, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(h.colors.paint(func(p *palette) *color.Color { return p.key }, prefix+a.Key))
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && (s == "" || strings.ContainsAny(s, " \t\n\"=")) {
		return strconv.Quote(s)
	}
	return s
}

// WithAttrs returns a Handler that appends attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		h.writeAttr(&b, h.prefix, a)
	}
	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup returns a Handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
