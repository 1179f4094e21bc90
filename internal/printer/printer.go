// Package printer writes styled, human readable command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

type ctxKey struct{}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Printer writes prefixed status lines.
type Printer struct {
	out io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) line(prefix string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = prefix + " " + msg
	}
	_, _ = fmt.Fprintln(p.out, msg)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(successStyle.Render("✔"), format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(infoStyle.Render("•"), format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(warnStyle.Render("!"), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(errorStyle.Render("✘"), format, args...)
}

func (p *Printer) Printf(format string, args ...any) {
	p.line("", format, args...)
}

// Muted renders s in a dim style for secondary details.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
