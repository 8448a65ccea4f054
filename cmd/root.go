package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var (
	rootCmd = &cobra.Command{
		Use:   "samstats [flags] <samfile>",
		Short: "descriptive statistics for alignments in sam format",
		Long: `descriptive statistics for alignments in sam format

Counts mapped, unmapped and partially mapped reads, reads per reference, the MAPQ
distribution and CIGAR alignment types, then looks at every read name that occurs
exactly twice and reports how the two segments relate. The MAPQ distribution is
also drawn as a bar chart.

Example usage:
	samstats aligned.sam
	samstats -o report.json --format json --plot mapq.svg aligned.sam.gz
	minimap2 -a reference.fasta reads.fastq | samstats --no-plot -`,
		Version:       "1.0.0",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: runStats,
	}
)

var verbose bool

func init() {
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress and other detail to stderr")
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
