package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/plist"
)

func listCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Demonstrate the persistent stack (pkg/plist)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList(n)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 10, "number of elements to push")

	return cmd
}

func runList(n int) error {
	before := plist.Empty[int]()
	for i := range n {
		before = before.Push(i)
	}

	printSectionHeader("list before", before.Len())

	tbl := newTable("#", "value")
	for i, v := range before.ToSequence() {
		tbl.AppendRow([]any{i, v})
	}

	tbl.Render()

	_, done := recorder.Operation(context.Background(), "plist", "push")
	after := before.Push(n)
	done()

	top, err := after.Top()
	if err != nil {
		return err
	}

	printSectionHeader("list after one more push", after.Len())
	fmt.Printf("  top: %v\n", top)

	printDiff("diff vs. original (still held by the caller)", joinValues(before.ToSequence()), joinValues(after.ToSequence()))

	return nil
}
