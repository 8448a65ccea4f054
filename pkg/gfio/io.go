/*
Package gfio provides io functionality, including to/from stdin/stdout,
transparent gzip decompression of input, and helpful error messages when
used in combination with bad filepaths from commandline arguments
*/
package gfio

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var gzipMagic = []byte{0x1f, 0x8b}

// readCloser closes every layer of a stacked input in turn.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// nopCloser keeps os.Stdin open when the reader is closed.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenIn opens path for reading, with "-" or "stdin" meaning standard input.
// gzip input, recognised by its magic bytes, is decompressed on the fly. what
// names the argument in error messages.
func OpenIn(path string, what string) (io.ReadCloser, error) {
	var f *os.File
	var closer io.Closer

	if path == "-" || path == "stdin" {
		f = os.Stdin
		closer = nopCloser{}
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, errors.Wrap(err, what)
		}
		closer = f
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		closer.Close()
		return nil, errors.Wrapf(err, "%s: reading %s", what, path)
	}

	if len(head) == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			closer.Close()
			return nil, errors.Wrapf(err, "%s: opening gzip input %s", what, path)
		}
		return &readCloser{Reader: gz, closers: []io.Closer{gz, closer}}, nil
	}

	return &readCloser{Reader: br, closers: []io.Closer{closer}}, nil
}

// OpenOut creates the file named by flag, or returns stdout if its value is "stdout".
func OpenOut(flag pflag.Flag) (*os.File, error) {
	outFile := flag.Value.String()

	if outFile == "stdout" {
		return os.Stdout, nil
	}

	f, err := os.Create(outFile)
	if err != nil {
		return nil, errors.Wrap(err, flagString(flag))
	}
	return f, nil
}

func flagString(flag pflag.Flag) string {
	switch len(flag.Shorthand) {
	case 0:
		return "--" + flag.Name
	default:
		return "-" + flag.Shorthand + " / --" + flag.Name
	}
}
