package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/rosetree"
)

func treeCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Demonstrate the persistent rose tree (pkg/rosetree)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTree(n)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 5, "number of children to add to the root")

	return cmd
}

func runTree(n int) error {
	root := rosetree.New(0)

	before := root
	for i := 1; i <= n; i++ {
		before = before.Root().AddChild(i)
	}

	before = before.Root()

	printSectionHeader("tree before", len(before.Flatten()))

	tbl := newTable("#", "value")
	for i, v := range before.Flatten() {
		tbl.AppendRow([]any{i, v})
	}

	tbl.Render()

	firstChild := before.Children()[0]

	_, done := recorder.Operation(context.Background(), "rosetree", "remove_focus")
	after := firstChild.RemoveFocus()
	done()

	afterRoot := after.Root()

	printSectionHeader("tree after removing one child", len(afterRoot.Flatten()))
	fmt.Printf("  removed child value: %v\n", firstChild.Data())

	printDiff("diff vs. original (still held by the caller)", joinValues(before.Flatten()), joinValues(afterRoot.Flatten()))

	return nil
}
