package stats

import (
	"github.com/virus-evolution/samstats/pkg/sam"
)

// PairStats describes the read names that occur exactly twice.
type PairStats struct {
	Paired                      int `json:"paired_reads"`
	OneMappedOneUnmapped        int `json:"pairs_one_mapped_one_unmapped"`
	OneMappedOnePartiallyMapped int `json:"pairs_one_mapped_one_partially_mapped"`
}

// AnalysePairs counts the two-record groups and sorts each into at most one
// category. Groups of any other size are ignored.
//
// The checks run in a fixed order and the first that holds wins:
//
//	read1 mapped, read2 unmapped             -> OneMappedOneUnmapped
//	read1 unmapped, read2 mapped             -> OneMappedOneUnmapped
//	read1 mapped, read2 partially mapped     -> OneMappedOnePartiallyMapped
//	read1 partially mapped, read2 mapped     -> OneMappedOnePartiallyMapped
//
// Once the first two checks fail both reads share a mapped status, so two mapped
// reads where either is partial count as OneMappedOnePartiallyMapped, and two
// unmapped reads never count in either category.
func AnalysePairs(groups *Groups) PairStats {
	var ps PairStats

	groups.Each(func(_ string, records []sam.Record) {
		if len(records) != 2 {
			return
		}
		ps.Paired++
		ps.classify(records[0], records[1])
	})

	return ps
}

func (ps *PairStats) classify(read1, read2 sam.Record) {
	switch {
	case read1.IsMapped() && !read2.IsMapped():
		ps.OneMappedOneUnmapped++
	case !read1.IsMapped() && read2.IsMapped():
		ps.OneMappedOneUnmapped++
	case read1.IsMapped() && read2.IsPartiallyMapped():
		ps.OneMappedOnePartiallyMapped++
	case read1.IsPartiallyMapped() && read2.IsMapped():
		ps.OneMappedOnePartiallyMapped++
	}
}
