package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/sarchlab/pagesim/config"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/sarchlab/pagesim/mem/vm/paging"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run TRACE",
		Short: "Replay a trace and print the paging statistics.",
		Long: "Replay a trace against one memory manager. Trace files ending " +
			"in .lz4, .sz, or .snappy are decompressed on the fly.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			monitor, _ := cmd.Flags().GetBool("monitor")
			logFrames, _ := cmd.Flags().GetBool("log-frames")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runTrace(ctx, cmd.OutOrStdout(), args[0], cfg,
				runOptions{monitor: monitor, logFrames: logFrames})
		},
	}

	flags := runCmd.Flags()
	flags.Int("frames", 0, "Number of physical frames.")
	flags.String("policy", "", "Replacement policy: clock, lru, or random.")
	flags.Uint64("seed", 0, "Seed of the random policy.")
	flags.Bool("debug", false, "Print a line for every paging event.")
	flags.Bool("log-frames", false,
		"Log the frame of every page load and eviction to stderr.")
	flags.String("record", "",
		"Record every paging event into PATH.sqlite3.")
	flags.Bool("monitor", false,
		"Serve a monitoring page while the trace is replayed.")
	flags.Int("port", 0, "Port of the monitoring page (random if unset).")
	flags.Bool("open-browser", false, "Open the monitoring page in a browser.")

	return runCmd
}

type runOptions struct {
	monitor   bool
	logFrames bool
}

func runTrace(
	ctx context.Context,
	out io.Writer,
	path string,
	cfg config.Config,
	opts runOptions,
) (err error) {
	f, err := trace.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	builder := cfg.ManagerBuilder().
		WithTraceSink(paging.NewLogTraceSink(log.New(out, "", 0)))

	var (
		recorder datarecording.DataRecorder
		tracer   *trace.DBTracer
	)

	if cfg.RecordPath != "" {
		recorder, err = datarecording.New(cfg.RecordPath)
		if err != nil {
			return err
		}

		defer func() {
			err = errors.Join(err, recorder.Close())
		}()

		tracer = trace.NewDBTracer(recorder, "")
		builder = builder.WithHook(tracer)
	}

	if opts.logFrames {
		builder = builder.WithHook(trace.NewFrameLogger(logger))
	}

	m, err := builder.Build("MemoryManager")
	if err != nil {
		return err
	}

	var onAccess func(trace.Result)

	if opts.monitor {
		mon := monitoring.NewMonitor().
			WithPortNumber(cfg.MonitorPort).
			WithLogger(logger)
		mon.RegisterManager(m)

		if _, err := mon.StartServer(); err != nil {
			return err
		}

		if cfg.OpenBrowser {
			if err := mon.OpenInBrowser(); err != nil {
				logger.Printf("cannot open browser: %v", err)
			}
		}

		bar := mon.CreateProgressBar(path, 0)
		onAccess = func(r trace.Result) { bar.SetFinished(r.Events()) }

		defer func() {
			mon.CompleteProgressBar(bar)
			logger.Printf("replay finished, serving %s until interrupted",
				mon.URL())
			<-ctx.Done()
		}()
	}

	res, err := trace.Replay(ctx, f, m, onAccess)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if tracer != nil {
		tracer.RecordRun(m, res.Events())
		logger.Printf("run %s recorded into %s.sqlite3",
			tracer.RunID(), cfg.RecordPath)
	}

	printSummary(out, m, res)

	return nil
}

func printSummary(out io.Writer, m *paging.Manager, res trace.Result) {
	stats := m.Stats()

	rate := 0.0
	if res.Events() > 0 {
		rate = float64(stats.Faults) / float64(res.Events())
	}

	fmt.Fprintf(out, "total memory frames: %d\n", m.FrameCount())
	fmt.Fprintf(out, "events in trace: %d\n", res.Events())
	fmt.Fprintf(out, "total disk reads: %d\n", stats.DiskReads)
	fmt.Fprintf(out, "total disk writes: %d\n", stats.DiskWrites)
	fmt.Fprintf(out, "page fault rate: %.4f\n", rate)
}
