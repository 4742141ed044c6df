package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/pqueue"
)

func queueCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Demonstrate the persistent FIFO queue (pkg/pqueue)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runQueue(n)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 10, "number of elements to enqueue")

	return cmd
}

func runQueue(n int) error {
	q := pqueue.Empty[int]()
	for i := range n {
		q = q.Enqueue(i)
	}

	printSectionHeader("queue before", q.Len())

	tbl := newTable("#", "value")
	for i, v := range q.ToSequence() {
		tbl.AppendRow([]any{i, v})
	}

	tbl.Render()

	_, done := recorder.Operation(context.Background(), "pqueue", "dequeue")
	oldest, after, err := q.Dequeue()
	done()

	if err != nil {
		return err
	}

	printSectionHeader("queue after one dequeue", after.Len())
	tbl2 := newTable("field", "value")
	tbl2.AppendRow([]any{"dequeued", oldest})
	tbl2.Render()

	printDiff("diff vs. original (still held by the caller)", joinValues(q.ToSequence()), joinValues(after.ToSequence()))

	return nil
}
