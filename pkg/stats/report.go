package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/virus-evolution/samstats/pkg/sam"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// WriteReport writes s and ps to w in the given format.
func WriteReport(w io.Writer, s *Stats, ps PairStats, format string) error {
	switch format {
	case FormatText, "":
		return WriteText(w, s, ps)
	case FormatJSON:
		return WriteJSON(w, s, ps)
	default:
		return fmt.Errorf("unknown report format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// WriteText writes a human-readable summary. Map-valued counters are written
// in sorted key order, with MAPQ bins ordered numerically.
func WriteText(w io.Writer, s *Stats, ps PairStats) error {
	var b strings.Builder

	b.WriteString("\n=== Results of Analysis ===\n")
	fmt.Fprintf(&b, "Total reads: %d\n", s.Total)
	fmt.Fprintf(&b, "Mapped reads: %d\n", s.Mapped)
	fmt.Fprintf(&b, "Unmapped reads: %d\n", s.Unmapped)
	fmt.Fprintf(&b, "Paired reads: %d\n", ps.Paired)
	fmt.Fprintf(&b, "Partially mapped reads: %d\n", s.PartiallyMapped)
	fmt.Fprintf(&b, "Properly paired reads: %d\n", s.ProperlyPaired)
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "Skipped malformed lines: %d\n", s.Skipped)
	}

	b.WriteString("\n=== Pair Analysis ===\n")
	fmt.Fprintf(&b, "Pairs with one mapped and one unmapped: %d\n", ps.OneMappedOneUnmapped)
	fmt.Fprintf(&b, "Pairs with one mapped and one partially mapped: %d\n", ps.OneMappedOnePartiallyMapped)

	b.WriteString("\nReads by chromosome:\n")
	for _, ref := range sortedKeys(s.ByReference) {
		fmt.Fprintf(&b, "  %s: %d reads\n", ref, s.ByReference[ref])
	}

	b.WriteString("\nMAPQ score distribution:\n")
	for _, bin := range s.QualityBins() {
		fmt.Fprintf(&b, "  MAPQ %s: %d reads\n", bin.Label, bin.Count)
	}

	b.WriteString("\nCIGAR alignment types:\n")
	for _, typ := range sortedKeys(s.CigarTypes) {
		fmt.Fprintf(&b, "  %s: %d reads\n", typ, s.CigarTypes[typ])
	}

	b.WriteString("\nFlag bits:\n")
	for _, bit := range sam.FlagBits {
		if n := s.FlagCounts[bit.Name]; n > 0 {
			fmt.Fprintf(&b, "  0x%03x %s: %d reads\n", uint16(bit.Flag), bit.Name, n)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonReport struct {
	*Stats
	Pairs PairStats `json:"pairs"`
}

// WriteJSON writes s and ps as one indented JSON object.
func WriteJSON(w io.Writer, s *Stats, ps PairStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Stats: s, Pairs: ps})
}

func sortedKeys(m map[string]int) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
