/*
Package stats accumulates descriptive statistics over a stream of SAM records:
mapped/unmapped counts, reads per reference, MAPQ and alignment-type histograms,
and relationships between the two segments of each read pair.
*/
package stats

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/virus-evolution/samstats/pkg/sam"
)

// binWidth is the width of each MAPQ histogram bin.
const binWidth = 10

// RecordReader is the source of records consumed by Aggregate. *sam.Reader satisfies it.
type RecordReader interface {
	Read() (sam.Record, error)
}

// Stats holds the per-record counters of one run.
type Stats struct {
	Total           int `json:"total_reads"`
	Mapped          int `json:"mapped_reads"`
	Unmapped        int `json:"unmapped_reads"`
	PartiallyMapped int `json:"partially_mapped_reads"`
	ProperlyPaired  int `json:"properly_paired_reads"`
	Skipped         int `json:"skipped_lines"`

	ByReference map[string]int `json:"reads_by_reference"`
	MapQ        map[string]int `json:"mapq_distribution"`
	CigarTypes  map[string]int `json:"cigar_distribution"`

	// FlagCounts tallies how many records have each flag bit set, keyed by sam.FlagBit name.
	FlagCounts map[string]int `json:"flag_counts"`
}

// NewStats returns an empty Stats with its maps allocated.
func NewStats() *Stats {
	return &Stats{
		ByReference: make(map[string]int),
		MapQ:        make(map[string]int),
		CigarTypes:  make(map[string]int),
		FlagCounts:  make(map[string]int),
	}
}

// Groups holds records keyed by read name, remembering the order in which
// names were first seen.
type Groups struct {
	names   []string
	records map[string][]sam.Record
}

func newGroups() *Groups {
	return &Groups{records: make(map[string][]sam.Record)}
}

func (g *Groups) add(rec sam.Record) {
	if _, ok := g.records[rec.Name]; !ok {
		g.names = append(g.names, rec.Name)
	}
	g.records[rec.Name] = append(g.records[rec.Name], rec)
}

// Len returns the number of distinct read names.
func (g *Groups) Len() int {
	return len(g.names)
}

// Get returns the records that share name, in input order.
func (g *Groups) Get(name string) []sam.Record {
	return g.records[name]
}

// Each calls fn for every name in first-seen order.
func (g *Groups) Each(fn func(name string, records []sam.Record)) {
	for _, name := range g.names {
		fn(name, g.records[name])
	}
}

// Options tune Aggregate.
type Options struct {
	// SkipMalformed logs and skips lines that cannot be parsed instead of failing the run.
	SkipMalformed bool
	// Progress logs a debug message every Progress records. Zero disables it.
	Progress int
	// Logger receives warnings and progress. Nil discards them.
	Logger logrus.FieldLogger
}

// Add folds one record into the counters.
func (s *Stats) Add(rec sam.Record) {
	s.Total++

	s.CigarTypes[sam.ClassifyCigar(rec.Cigar)]++

	if rec.IsMapped() {
		s.Mapped++
		s.ByReference[rec.Ref]++
		if rec.IsPartiallyMapped() {
			s.PartiallyMapped++
		}
	} else {
		s.Unmapped++
	}

	if sam.IsProperPair(rec.Flags) {
		s.ProperlyPaired++
	}
	for _, bit := range sam.FlagBits {
		if rec.Flags&bit.Flag != 0 {
			s.FlagCounts[bit.Name]++
		}
	}

	s.MapQ[QualityBin(rec.MapQ)]++
}

// Aggregate reads every record from r, updating a fresh Stats and grouping the
// records by name. It stops at io.EOF. Any other read error ends the run unless
// it is a *sam.MalformedRecordError and opts.SkipMalformed is set.
func Aggregate(r RecordReader, opts Options) (*Stats, *Groups, error) {

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	s := NewStats()
	groups := newGroups()

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var merr *sam.MalformedRecordError
			if opts.SkipMalformed && errors.As(err, &merr) {
				log.WithField("line", merr.Line).Warn(merr.Error())
				s.Skipped++
				continue
			}
			return nil, nil, pkgerrors.Wrap(err, "reading sam records")
		}

		s.Add(rec)
		groups.add(rec)

		if opts.Progress > 0 && s.Total%opts.Progress == 0 {
			log.WithField("records", s.Total).Debug("progress")
		}
	}

	return s, groups, nil
}

// QualityBin returns the label of the 10-wide MAPQ bin holding mapq, e.g. "[20-29]".
func QualityBin(mapq int) string {
	lo := floorDiv(mapq, binWidth) * binWidth
	return fmt.Sprintf("[%d-%d]", lo, lo+binWidth-1)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// binStart recovers the lower bound from a QualityBin label.
func binStart(label string) (int, bool) {
	body := strings.TrimSuffix(strings.TrimPrefix(label, "["), "]")
	// the lower bound may itself be negative, so split on the first '-' that follows a digit
	for i := 1; i < len(body); i++ {
		if body[i] == '-' && body[i-1] >= '0' && body[i-1] <= '9' {
			lo, err := strconv.Atoi(body[:i])
			return lo, err == nil
		}
	}
	return 0, false
}

// Bin is one bar of the MAPQ histogram.
type Bin struct {
	Label string
	Count int
}

// QualityBins returns the MAPQ histogram ordered by numeric bin start rather
// than plain label order, so "[100-109]" follows "[90-99]".
func (s *Stats) QualityBins() []Bin {
	bins := make([]Bin, 0, len(s.MapQ))
	for label, count := range s.MapQ {
		bins = append(bins, Bin{Label: label, Count: count})
	}
	slices.SortFunc(bins, func(a, b Bin) bool {
		la, oka := binStart(a.Label)
		lb, okb := binStart(b.Label)
		if oka && okb && la != lb {
			return la < lb
		}
		return a.Label < b.Label
	})
	return bins
}
