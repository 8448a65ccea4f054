package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virus-evolution/samstats/pkg/gfio"
	"github.com/virus-evolution/samstats/pkg/plot"
	"github.com/virus-evolution/samstats/pkg/sam"
	"github.com/virus-evolution/samstats/pkg/stats"
)

var statsOutfile string
var statsFormat string
var statsPlotFile string
var statsNoPlot bool
var statsSkipMalformed bool
var statsProgress int

func init() {
	rootCmd.Flags().StringVarP(&statsOutfile, "outfile", "o", "stdout", "Where to write the report")
	rootCmd.Flags().StringVarP(&statsFormat, "format", "f", stats.FormatText, "Report format: text or json")
	rootCmd.Flags().StringVarP(&statsPlotFile, "plot", "p", "mapq_distribution.png", "Where to draw the MAPQ distribution. The extension picks the image format (png, svg, pdf)")
	rootCmd.Flags().BoolVarP(&statsNoPlot, "no-plot", "", false, "Don't draw the MAPQ distribution")
	rootCmd.Flags().BoolVarP(&statsSkipMalformed, "skip-malformed", "", false, "Warn about and skip lines that can't be parsed, instead of stopping")
	rootCmd.Flags().IntVarP(&statsProgress, "progress", "", 0, "With --verbose, log progress every this many records (0 for never)")

	rootCmd.Flags().Lookup("no-plot").NoOptDefVal = "true"
	rootCmd.Flags().Lookup("skip-malformed").NoOptDefVal = "true"

	rootCmd.Flags().SortFlags = false
}

func runStats(cmd *cobra.Command, args []string) error {

	if statsFormat != stats.FormatText && statsFormat != stats.FormatJSON {
		return fmt.Errorf("--format must be %s or %s, not %q", stats.FormatText, stats.FormatJSON, statsFormat)
	}
	if statsProgress < 0 {
		return errors.New("--progress must be >= 0")
	}

	samIn, err := gfio.OpenIn(args[0], "samfile")
	if err != nil {
		return err
	}
	defer samIn.Close()
	log.WithField("samfile", args[0]).Debug("reading alignments")

	s, groups, err := stats.Aggregate(sam.NewReader(samIn), stats.Options{
		SkipMalformed: statsSkipMalformed,
		Progress:      statsProgress,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	ps := stats.AnalysePairs(groups)
	log.WithFields(logrus.Fields{
		"records": s.Total,
		"names":   groups.Len(),
		"pairs":   ps.Paired,
	}).Debug("analysis finished")

	out, err := gfio.OpenOut(*cmd.Flag("outfile"))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := stats.WriteReport(out, s, ps, statsFormat); err != nil {
		return err
	}

	if !statsNoPlot {
		if err := plot.Save(statsPlotFile, s.QualityBins()); err != nil {
			return err
		}
		log.WithField("plot", statsPlotFile).Info("wrote MAPQ distribution")
	}

	return nil
}
