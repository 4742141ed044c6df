package main

import (
	"context"
	"fmt"
	"hash/maphash"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/phamt"
)

var hashSeed = maphash.MakeSeed() //nolint:gochecknoglobals // stable process-lifetime hash seed for the demo

func hashString(s string) uint64 {
	return maphash.String(hashSeed, s)
}

func hashCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Demonstrate the persistent hash map/set (pkg/phamt)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runHash(n)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 20, "number of keys to insert")

	return cmd
}

func runHash(n int) error {
	ctx := context.Background()
	m := phamt.NewMap[string, int](hashString, func(a, b string) bool { return a == b })

	for i := range n {
		key := fmt.Sprintf("item-%d", i)

		_, insDone := recorder.Operation(ctx, "phamt", "insert")
		next, depth := m.InsertObserved(key, i)
		insDone()
		recorder.RecordTrieDepth(ctx, depth)

		m = next
	}

	printSectionHeader("hash map before", m.Len())
	fmt.Printf("  trie fan-out bits: %d\n", cfg.Hamt.Bits)

	tbl := newTable("#", "key")
	for i, p := range m.ToSequence() {
		tbl.AppendRow([]any{i, p.Key})
	}

	tbl.Render()

	_, done := recorder.Operation(ctx, "phamt", "remove")
	after, depth := m.RemoveObserved("item-0")
	done()
	recorder.RecordTrieDepth(ctx, depth)

	printSectionHeader("hash map after removing one key", after.Len())
	fmt.Printf("  remove reached depth: %d\n", depth)

	keysOf := func(pairs []phamt.Pair[string, int]) []string {
		keys := make([]string, len(pairs))
		for i, p := range pairs {
			keys[i] = p.Key
		}

		return keys
	}

	printDiff("diff vs. original (still held by the caller)", joinValues(keysOf(m.ToSequence())), joinValues(keysOf(after.ToSequence())))

	return nil
}
