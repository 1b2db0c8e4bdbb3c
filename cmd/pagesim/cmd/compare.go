package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/config"
	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/sarchlab/pagesim/mem/vm/paging"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare TRACE",
		Short: "Replay a trace under every policy and compare the results.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return compareTrace(cmd.Context(), cmd.OutOrStdout(), args[0], cfg)
		},
	}

	compareCmd.Flags().Int("frames", 0, "Number of physical frames.")
	compareCmd.Flags().Uint64("seed", 0, "Seed of the random policy.")

	return compareCmd
}

func compareTrace(
	ctx context.Context,
	out io.Writer,
	path string,
	cfg config.Config,
) error {
	records, err := readTrace(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "policy\tframes\tevents\tfaults\tdisk reads\tdisk writes\tfault rate\t")

	for _, kind := range paging.PolicyKinds {
		cfg.Policy = kind
		cfg.Debug = false

		// Debug directives in the trace must not interleave with the table.
		m, err := cfg.ManagerBuilder().
			WithTraceSink(paging.TraceSinkFunc(func(paging.Event) {})).
			Build("MemoryManager")
		if err != nil {
			return err
		}

		res, err := trace.Replay(ctx, trace.NewSliceSource(records), m, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		stats := m.Stats()
		rate := 0.0
		if res.Events() > 0 {
			rate = float64(stats.Faults) / float64(res.Events())
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.4f\t\n",
			kind, m.FrameCount(), res.Events(),
			stats.Faults, stats.DiskReads, stats.DiskWrites, rate)
	}

	return tw.Flush()
}

func readTrace(path string) ([]trace.Access, error) {
	f, err := trace.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := f.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}
