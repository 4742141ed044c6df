package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/avl"
	"github.com/Sumatoshi-tech/persist/pkg/capability"
)

func footprintCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Report the in-memory LZ4 footprint of an ordered map's key sequence",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runFootprint(n)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 1000, "number of sequential keys to insert")

	return cmd
}

// runFootprint compresses the ordered map's key sequence with LZ4, the way
// the teacher's internal/rbtree.CompressUInt32Slice shrinks a node-offset
// slice before it is cached. Nothing here is written to or read back from
// disk: the compressed bytes exist only long enough to report their size,
// never replacing ToSequence as a way to reconstruct the map.
func runFootprint(n int) error {
	m := avl.NewMap[int, struct{}](capability.OrderedFromCmp[int]())
	for i := range n {
		m = m.Insert(i, struct{}{})
	}

	keys := make([]uint32, 0, m.Len())
	for _, p := range m.ToSequence() {
		keys = append(keys, uint32(p.Key)) //nolint:gosec // demo keys are small, non-adversarial ints
	}

	deltaEncode(keys)

	raw := new(bytes.Buffer)
	if err := binary.Write(raw, binary.LittleEndian, keys); err != nil {
		return fmt.Errorf("encode keys: %w", err)
	}

	compressed := make([]byte, lz4.CompressBlockBound(raw.Len()))

	written, err := lz4.CompressBlock(raw.Bytes(), compressed, nil)
	if err != nil {
		return fmt.Errorf("lz4 compress: %w", err)
	}

	printSectionHeader("footprint", m.Len())
	fmt.Printf("  raw key bytes:        %s\n", humanize.Bytes(uint64(raw.Len()))) //nolint:gosec // size is always non-negative
	fmt.Printf("  lz4-compressed bytes: %s\n", humanize.Bytes(uint64(written)))   //nolint:gosec // size is always non-negative
	fmt.Printf("  ratio:                %.2fx\n", float64(raw.Len())/float64(written))

	return nil
}

// deltaEncode replaces each element with the difference from its
// predecessor, in place, the same transform the teacher's
// DeltaEncodeUInt32Slice applies before compression: sorted key sequences
// become small, repetitive values LZ4 shrinks much further than the raw ints.
func deltaEncode(data []uint32) {
	for i := len(data) - 1; i > 0; i-- {
		data[i] -= data[i-1]
	}
}
