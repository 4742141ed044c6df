package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func newTable(header ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(header)

	return tbl
}

func printSectionHeader(name string, size int) {
	bold := color.New(color.FgCyan, color.Bold)
	bold.Fprintf(os.Stdout, "%s", name)
	fmt.Fprintf(os.Stdout, " (%s elements)\n", humanize.Comma(int64(size)))
}

// joinValues renders a sequence of container elements as a comma-separated
// string, the representation printDiff compares before/after versions of.
func joinValues[T any](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}

	return strings.Join(parts, ",")
}

// printDiff renders a colorized diff between the string forms of two
// container versions, computed with diffmatchpatch as a character-level
// diff of the comma-joined element strings. Unlike a static "unchanged"
// label, this actually shows what, if anything, the mutation changed:
// inserted text in green, deleted text in red, and the text both versions
// share uncolored.
func printDiff(label, before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	fmt.Fprintf(os.Stdout, "  %s: ", label)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			color.New(color.FgGreen).Fprint(os.Stdout, d.Text)
		case diffmatchpatch.DiffDelete:
			color.New(color.FgRed, color.CrossedOut).Fprint(os.Stdout, d.Text)
		case diffmatchpatch.DiffEqual:
			fmt.Fprint(os.Stdout, d.Text)
		}
	}

	fmt.Fprintln(os.Stdout)
}
