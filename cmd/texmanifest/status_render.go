package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusLabels = map[statusKind]string{
	statusInfo:  "INFO",
	statusOK:    "OK",
	statusWarn:  "WARN",
	statusError: "ERROR",
}

var statusColors = map[statusKind]string{
	statusInfo:  "\x1b[34m",
	statusOK:    "\x1b[32m",
	statusWarn:  "\x1b[33m",
	statusError: "\x1b[31m",
}

const (
	ansiReset        = "\x1b[0m"
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	tag := "[" + statusLabels[kind] + "]"
	if message != "" {
		tag += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", tag)
	if color, ok := statusColors[kind]; colorize && ok {
		return color + line + ansiReset
	}
	return line
}

// statusWriter prints status lines to one writer and counts errors.
type statusWriter struct {
	out      io.Writer
	colorize bool
	errors   int
}

func newStatusWriter(out io.Writer) *statusWriter {
	return &statusWriter{out: out, colorize: shouldColorize(out)}
}

func (w *statusWriter) line(label string, kind statusKind, message string) {
	if kind == statusError {
		w.errors++
	}
	fmt.Fprintln(w.out, renderStatusLine(label, kind, message, w.colorize))
}

func (w *statusWriter) check(label string, passed bool, detail string) {
	kind := statusOK
	if !passed {
		kind = statusError
	}
	w.line(label, kind, detail)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
