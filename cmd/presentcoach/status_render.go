package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	labelColumn  = 20
	statusIndent = "  "
)

type statusStyle struct {
	tag   string
	color string
}

var statusStyles = map[statusKind]statusStyle{
	statusInfo:  {tag: "INFO", color: ansiBlue},
	statusOK:    {tag: "OK", color: ansiGreen},
	statusWarn:  {tag: "WARN", color: ansiYellow},
	statusError: {tag: "ERROR", color: ansiRed},
}

func styleFor(kind statusKind) statusStyle {
	if style, ok := statusStyles[kind]; ok {
		return style
	}
	return statusStyles[statusInfo]
}

// renderStatusLine formats "  Label:   [TAG] message", tinted when colorize is set.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := styleFor(kind)
	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s [%s]", labelColumn, label+":", style.tag)
	if message != "" {
		b.WriteString(" ")
		b.WriteString(message)
	}
	return tint(b.String(), style.color, colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	underline := strings.Repeat("-", len(heading))
	return []string{
		tint(heading, ansiBlue, colorize),
		tint(underline, ansiBlue, colorize),
	}
}

func tint(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ansiReset
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
