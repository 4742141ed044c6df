package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/avl"
	"github.com/Sumatoshi-tech/persist/pkg/capability"
)

func orderedCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "ordered",
		Short: "Demonstrate the persistent ordered map/set (pkg/avl)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOrdered(n)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 20, "number of keys to insert")

	return cmd
}

func runOrdered(n int) error {
	ctx := context.Background()
	m := avl.NewMap[int, string](capability.OrderedFromCmp[int]())

	for i := range n {
		key := (i * 2654435761) % (n * 10)

		_, insDone := recorder.Operation(ctx, "avl", "insert")
		next, depth := m.InsertObserved(key, "")
		insDone()
		recorder.RecordRebalanceDepth(ctx, depth)

		m = next
	}

	printSectionHeader("ordered map before", m.Len())
	fmt.Printf("  tree height: %d\n", m.Height())

	tbl := newTable("#", "key")
	for i, p := range m.ToSequence() {
		tbl.AppendRow([]any{i, p.Key})
	}

	tbl.Render()

	firstKey := m.ToSequence()[0].Key

	_, done := recorder.Operation(ctx, "avl", "remove")
	after, depth := m.RemoveObserved(firstKey)
	done()
	recorder.RecordRebalanceDepth(ctx, depth)

	printSectionHeader("ordered map after removing one key", after.Len())
	fmt.Printf("  remove reached depth: %d\n", depth)

	keysOf := func(pairs []avl.Pair[int, string]) []int {
		keys := make([]int, len(pairs))
		for i, p := range pairs {
			keys[i] = p.Key
		}

		return keys
	}

	printDiff("diff vs. original (still held by the caller)", joinValues(keysOf(m.ToSequence())), joinValues(keysOf(after.ToSequence())))

	return nil
}
