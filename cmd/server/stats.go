package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bankstats/internal/stats"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stats [number...]",
		Short:   "Print largest, smallest and average of the given numbers",
		Example: "bankstats stats 15 8 42 4 23 16",
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("stats: argument %d: %w", i+1, err)
				}
				nums[i] = v
			}
			s := stats.Summarize(nums)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Array:    [%s]\n", strings.Join(args, ", "))
			fmt.Fprintf(out, "Largest:  %s\n", formatNumber(s.Largest))
			fmt.Fprintf(out, "Smallest: %s\n", formatNumber(s.Smallest))
			fmt.Fprintf(out, "Average:  %s\n", formatNumber(s.Average))
			return nil
		},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
