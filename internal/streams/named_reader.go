package streams

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

// StdioName is the name which selects standard input or output instead of a file.
const StdioName = "-"

// NamedReader implements the io.ReadCloser interface as well as fmt.Stringer. It allows the caller to setup
// a name for the stream which will be returned when outputing the stream with `%v`.
// It also makes sure that `Close()` can be called safely multiple times. Calling `Close()` on a closed object
// will simply succeed without an error.
type NamedReader struct {
	io.ReadCloser
	name   string
	closed bool
}

func NewNamedReader(wrapped io.ReadCloser, name string) *NamedReader {
	if nr, ok := wrapped.(*NamedReader); ok && nr.name == name {
		return nr
	}

	return &NamedReader{
		ReadCloser: wrapped,
		name:       name,
	}
}

// OpenInput opens the named file for reading. An empty name or StdioName selects standard input,
// which is never closed by Close.
func OpenInput(name string) (*NamedReader, error) {
	if name == "" || name == StdioName {
		return NewNamedReader(ioutil.NopCloser(os.Stdin), "stdin"), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not open %s", name)
	}
	return NewNamedReader(f, name), nil
}

func (ns *NamedReader) String() string {
	return ns.name
}

// Close will close the underlying stream. If the Close has already been called, it will do nothing
func (ns *NamedReader) Close() error {
	if ns.closed {
		return nil
	}
	err := LogClose(ns.ReadCloser)
	ns.closed = true

	return err
}

// Closed will return `true` if NamedReader.Close has been called at least once
func (ns *NamedReader) Closed() bool {
	return ns.closed
}

// Unwrap returns the embedded io.ReadCloser
func (ns *NamedReader) Unwrap() io.ReadCloser {
	return ns.ReadCloser
}
