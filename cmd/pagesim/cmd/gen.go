package cmd

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/spf13/cobra"
)

func newGenCommand() *cobra.Command {
	defaults := trace.DefaultGenerator()

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic trace.",
		Long: "Generate a deterministic synthetic trace. The output is " +
			"compressed when the file name ends in .lz4, .sz, or .snappy.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			output, _ := flags.GetString("output")
			pattern, _ := flags.GetString("pattern")

			g := trace.DefaultGenerator()
			g.Pattern = trace.Pattern(pattern)
			g.Pages, _ = flags.GetInt("pages")
			g.Length, _ = flags.GetInt("length")
			g.WriteRatio, _ = flags.GetFloat64("write-ratio")
			g.Seed, _ = flags.GetUint64("seed")

			return generateTrace(output, g)
		},
	}

	flags := genCmd.Flags()
	flags.StringP("output", "o", "", "File to write the trace to.")
	flags.String("pattern", string(defaults.Pattern),
		"Access pattern: uniform, loop, or hotset.")
	flags.Int("pages", defaults.Pages, "Number of distinct pages.")
	flags.Int("length", defaults.Length, "Number of references.")
	flags.Float64("write-ratio", defaults.WriteRatio,
		"Fraction of references that are writes.")
	flags.Uint64("seed", defaults.Seed, "Seed of the generator.")
	_ = genCmd.MarkFlagRequired("output")

	return genCmd
}

func generateTrace(path string, g trace.Generator) (err error) {
	if err := g.Validate(); err != nil {
		return err
	}

	w, err := trace.CreateFile(path)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, w.Close())
	}()

	err = w.Comment(fmt.Sprintf(
		"pattern=%s pages=%d length=%d write-ratio=%g seed=%d",
		g.Pattern, g.Pages, g.Length, g.WriteRatio, g.Seed))
	if err != nil {
		return err
	}

	return g.Generate(w.Write)
}
