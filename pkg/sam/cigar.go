package sam

import (
	"strings"
)

// Alignment types assigned by ClassifyCigar.
const (
	SimpleMatch = "simple_match"
	NonMatch    = "non_match"
)

// lowMapQ is the mapping quality below which a mapped read counts as partially mapped.
const lowMapQ = 30

// IsPartiallyMapped is a heuristic: a low mapping quality, or any soft clip,
// insertion or deletion in the CIGAR, marks the alignment as imperfect.
func IsPartiallyMapped(mapq int, cigar string) bool {
	return mapq < lowMapQ || strings.ContainsAny(cigar, "SID")
}

// ClassifyCigar returns SimpleMatch if the CIGAR holds at least one run of
// digits directly followed by 'M', and NonMatch otherwise. Parsing is lenient:
// digits followed by anything else, stray operators and "*" are skipped.
func ClassifyCigar(cigar string) string {
	if hasMatchOp(cigar) {
		return SimpleMatch
	}
	return NonMatch
}

// hasMatchOp walks the whole string rather than stopping at the first M run.
func hasMatchOp(cigar string) bool {
	found := false
	for i := 0; i < len(cigar); {
		if !isDigit(cigar[i]) {
			i++
			continue
		}
		j := i
		for j < len(cigar) && isDigit(cigar[j]) {
			j++
		}
		if j < len(cigar) && cigar[j] == 'M' {
			found = true
		}
		i = j
	}
	return found
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
