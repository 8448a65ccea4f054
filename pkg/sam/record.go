package sam

import (
	"fmt"
	"strconv"
	"strings"

	biogosam "github.com/biogo/hts/sam"
)

// numFields is the number of leading tab-separated columns a record needs:
// QNAME, FLAG, RNAME, POS, MAPQ and CIGAR. Anything after CIGAR is ignored.
const numFields = 6

// Record is one alignment line of a SAM file, cut down to the columns the
// statistics need.
type Record struct {
	Name  string         // QNAME, shared by the two segments of a pair
	Flags biogosam.Flags // FLAG bitmask
	Ref   string         // RNAME, only meaningful when the segment is mapped
	Pos   int            // 1-based leftmost position
	MapQ  int            // mapping quality
	Cigar string         // CIGAR string as written, possibly "*"
}

// MalformedRecordError is returned when a line cannot be turned into a Record.
type MalformedRecordError struct {
	Line   int    // 1-based line number in the input, 0 if unknown
	Field  string // column that failed to parse, empty for a short line
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	var b strings.Builder
	b.WriteString("malformed sam record")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Field != "" {
		b.WriteString(": " + e.Field)
	}
	b.WriteString(": " + e.Reason)
	return b.String()
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// ParseRecord converts one non-header SAM line into a Record. The line should not
// carry its newline.
func ParseRecord(line string) (Record, error) {

	fields := strings.SplitN(line, "\t", numFields+1)
	if len(fields) < numFields {
		return Record{}, &MalformedRecordError{
			Reason: fmt.Sprintf("expected at least %d tab-separated fields, found %d", numFields, len(fields)),
		}
	}

	// any integer is accepted; only the low 16 bits are kept
	flag, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Record{}, &MalformedRecordError{Field: "FLAG", Reason: "not an integer: " + strconv.Quote(fields[1]), Err: err}
	}

	pos, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, &MalformedRecordError{Field: "POS", Reason: "not an integer: " + strconv.Quote(fields[3]), Err: err}
	}

	mapq, err := strconv.Atoi(fields[4])
	if err != nil {
		return Record{}, &MalformedRecordError{Field: "MAPQ", Reason: "not an integer: " + strconv.Quote(fields[4]), Err: err}
	}

	return Record{
		Name:  fields[0],
		Flags: biogosam.Flags(flag),
		Ref:   fields[2],
		Pos:   pos,
		MapQ:  mapq,
		Cigar: fields[5],
	}, nil
}

// IsMapped reports whether the record's own segment is mapped.
func (r Record) IsMapped() bool {
	return IsMapped(r.Flags)
}

// IsPartiallyMapped applies the partial-mapping heuristic to the record's quality and CIGAR.
func (r Record) IsPartiallyMapped() bool {
	return IsPartiallyMapped(r.MapQ, r.Cigar)
}
