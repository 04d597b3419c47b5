package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// terminal is the blocking notice-and-prompt surface of the console. It
// satisfies manager.UI: every mutation is confirmed through it and every
// outcome, success included, is acknowledged as a visible notice.
type terminal struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) readLine() string {
	if t.eof {
		return ""
	}
	if !t.in.Scan() {
		t.eof = true
		return ""
	}
	return strings.TrimSpace(t.in.Text())
}

// EOF reports that the input stream ended; screens treat it as "leave".
func (t *terminal) EOF() bool {
	return t.eof
}

// Prompt asks for a single value. The default is kept when the user just
// presses enter; entering "-" clears it, so edits can blank an optional
// field.
func (t *terminal) Prompt(label, def string) string {
	if def != "" {
		t.printf("%s [%s]: ", label, def)
	} else {
		t.printf("%s: ", label)
	}

	switch value := t.readLine(); value {
	case "":
		return def
	case "-":
		return ""
	default:
		return value
	}
}

// Choose presents numbered options and accepts either an option number or
// free text. Enter keeps the default.
func (t *terminal) Choose(label string, options []string, def string) string {
	t.printf("%s:\n", label)
	for i, option := range options {
		t.printf("  %d) %s\n", i+1, option)
	}

	value := t.Prompt("choice", def)
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return value
}

func (t *terminal) Confirm(prompt string) bool {
	t.printf("%s [y/N]: ", prompt)

	switch strings.ToLower(t.readLine()) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (t *terminal) Notify(message string) {
	t.printf("\n>> %s\n", message)
}

func (t *terminal) Error(message string) {
	t.printf("\n!! %s\n", message)
}

// Table renders records in aligned columns.
func (t *terminal) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		for i, cell := range cells {
			t.printf("  %-*s", widths[i], cell)
		}
		t.printf("\n")
	}

	printRow(headers)

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", widths[i])
	}
	printRow(separators)

	for _, row := range rows {
		printRow(row)
	}

	if len(rows) == 0 {
		t.printf("  (no records)\n")
	}
}
