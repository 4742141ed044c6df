package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/avl"
	"github.com/Sumatoshi-tech/persist/pkg/capability"
	"github.com/Sumatoshi-tech/persist/pkg/phamt"
)

func plotCmd() *cobra.Command {
	var (
		n   int
		out string
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render an HTML chart of ordered-map height vs. hash-map depth as n grows",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlot(n, out)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 200, "largest key count to sample")
	cmd.Flags().StringVar(&out, "out", "growth.html", "path to write the HTML chart to")

	return cmd
}

// runPlot samples tree height and trie depth at sizes spaced step keys apart
// and renders them as a line chart the way the teacher's
// internal/analyzers/quality buildDistributionChart does, minus the shared
// plotpage theming this module has no equivalent package for.
func runPlot(n int, out string) error {
	const step = 10

	var sizes []string

	var heights, depths []opts.LineData

	m := avl.NewMap[int, struct{}](capability.OrderedFromCmp[int]())
	h := phamt.NewMap[int, struct{}](func(k int) uint64 { return uint64(k) }, func(a, b int) bool { return a == b })

	maxDepth := 0

	for size := step; size <= n; size += step {
		for key := size - step; key < size; key++ {
			m = m.Insert(key, struct{}{})

			next, depth := h.InsertObserved(key, struct{}{})
			h = next

			if depth > maxDepth {
				maxDepth = depth
			}
		}

		sizes = append(sizes, fmt.Sprintf("%d", size))
		heights = append(heights, opts.LineData{Value: m.Height()})
		depths = append(depths, opts.LineData{Value: maxDepth})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Container growth", Subtitle: "avl tree height vs. phamt trie depth"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "elements inserted"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "depth"}),
	)
	line.SetXAxis(sizes)
	line.AddSeries("avl height", heights, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	line.AddSeries("phamt depth", depths, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	fmt.Printf("wrote %s\n", out)

	return nil
}
