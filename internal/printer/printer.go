// Package printer writes styled, human-oriented CLI output.
package printer

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/reportbox/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines. Errors and warnings go to the error writer.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a printer.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// NewContext returns ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stdout and
// stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
}

// Successf writes a line marked as a success.
func (p *Printer) Successf(format string, args ...any) {
	p.mark(p.out, "✔", styles.ColorSuccess, format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.mark(p.out, "•", styles.ColorMuted, format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.mark(p.errOut, "!", styles.ColorWarning, format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.mark(p.errOut, "✘", styles.ColorError, format, args...)
}

func (p *Printer) mark(w io.Writer, glyph string, c color.Color, format string, args ...any) {
	icon := lipgloss.NewStyle().Foreground(c).Bold(true).Render(glyph)
	_, _ = fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
