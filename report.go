package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	sizeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// reporter prints progress lines, styled only when out is a terminal.
type reporter struct {
	out    io.Writer
	errOut io.Writer
	styled bool
}

func newReporter(out *os.File) *reporter {
	return &reporter{
		out:    out,
		errOut: os.Stderr,
		styled: term.IsTerminal(int(out.Fd())),
	}
}

func (r *reporter) render(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *reporter) created(res iconResult) {
	line := r.render(createdStyle, "Created:") + " " + r.render(pathStyle, res.Path)
	if r.styled {
		line += " " + sizeStyle.Render(fmt.Sprintf("(%d bytes)", res.PNGBytes))
	}
	fmt.Fprintln(r.out, line)
}

func (r *reporter) done() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.render(successStyle, "All icons generated successfully!"))
}

func (r *reporter) failed(err error) {
	fmt.Fprintln(r.errOut, r.render(errorStyle, "Error: "+err.Error()))
}
