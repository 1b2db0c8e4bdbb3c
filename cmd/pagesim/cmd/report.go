package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report RECORD",
		Short: "Show the runs stored by run --record.",
		Long: "Without --run, list the runs stored in RECORD.sqlite3. With " +
			"--run, list the paging events of that run.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, _ := cmd.Flags().GetString("run")
			limit, _ := cmd.Flags().GetInt("limit")

			return report(cmd.Context(), cmd.OutOrStdout(),
				strings.TrimSuffix(args[0], ".sqlite3"), runID, limit)
		},
	}

	reportCmd.Flags().String("run", "", "Show the events of this run.")
	reportCmd.Flags().Int("limit", 50,
		"Maximum number of events to show (0 for all).")

	return reportCmd
}

func report(
	ctx context.Context,
	out io.Writer,
	path string,
	runID string,
	limit int,
) error {
	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	if runID == "" {
		return reportRuns(ctx, out, reader)
	}

	return reportEvents(ctx, out, reader, runID, limit)
}

func reportRuns(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
) error {
	runs, err := trace.ReadRuns(ctx, reader)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw,
		"run\tmanager\tpolicy\tframes\tevents\tfaults\tdisk reads\tdisk writes")

	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			r.RunID, r.Manager, r.Policy, r.Frames, r.Events,
			r.Faults, r.DiskReads, r.DiskWrites)
	}

	return tw.Flush()
}

func reportEvents(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
	runID string,
	limit int,
) error {
	events, total, err := trace.ReadEvents(ctx, reader, runID, limit)
	if err != nil {
		return err
	}

	if total == 0 {
		return fmt.Errorf("run %s has no recorded events", runID)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "seq\tevent\tpage\tframe\tdirty")

	for _, e := range events {
		frame := "-"
		if e.Frame >= 0 {
			frame = fmt.Sprint(e.Frame)
		}

		fmt.Fprintf(tw, "%d\t%s\t%x\t%s\t%t\n",
			e.Seq, e.What, e.Page, frame, e.Dirty)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(events) < total {
		fmt.Fprintf(out, "showing %d of %d events\n", len(events), total)
	}

	return nil
}
