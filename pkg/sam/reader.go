package sam

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// HeaderMarker starts every SAM header line.
const HeaderMarker = '@'

// Reader yields Records from SAM text one at a time. Header lines are
// skipped. It is single pass: once Read has returned io.EOF the input is spent.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader returns a Reader over SAM text read from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Line returns the number of input lines consumed so far.
func (sr *Reader) Line() int {
	return sr.line
}

// Read returns the next alignment record. It returns io.EOF when the input is
// exhausted, and a *MalformedRecordError (carrying the line number) for a line
// that cannot be parsed. A malformed line is consumed, so the caller may choose
// to carry on reading.
func (sr *Reader) Read() (Record, error) {
	for {
		text, err := sr.r.ReadString('\n')
		if len(text) == 0 {
			return Record{}, err
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return Record{}, err
		}
		sr.line++

		text = strings.TrimRight(text, "\r\n")
		if len(text) == 0 || text[0] == HeaderMarker {
			continue
		}

		rec, perr := ParseRecord(text)
		if perr != nil {
			var merr *MalformedRecordError
			if errors.As(perr, &merr) {
				merr.Line = sr.line
			}
			return Record{}, perr
		}
		return rec, nil
	}
}
