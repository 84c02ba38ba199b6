package streams

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// NamedWriter implements the io.WriteCloser interface as well as fmt.Stringer. It allows the caller to setup
// a name for the stream which will be returned when outputing the stream with `%v`.
// It also makes sure that `Close()` can be called safely multiple times. Calling `Close()` on a closed object
// will simply succeed without an error.
type NamedWriter struct {
	io.WriteCloser
	name   string
	closed bool
}

// NewNamedWriter will, unsurprisingly, create a new NamedWriter with a given name
func NewNamedWriter(wrapped io.WriteCloser, name string) *NamedWriter {
	if nw, ok := wrapped.(*NamedWriter); ok && nw.name == name {
		return nw
	}

	return &NamedWriter{
		WriteCloser: wrapped,
		name:        name,
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// OpenOutput creates (or truncates) the named file for writing. An empty name or StdioName selects
// standard output, which is never closed by Close.
func OpenOutput(name string) (*NamedWriter, error) {
	if name == "" || name == StdioName {
		return NewNamedWriter(nopWriteCloser{os.Stdout}, "stdout"), nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create %s", name)
	}
	return NewNamedWriter(f, name), nil
}

func (ns *NamedWriter) String() string {
	return ns.name
}

// Close will close the underlying stream. If the Close has already been called, it will do nothing
func (ns *NamedWriter) Close() error {
	if ns.closed {
		return nil
	}
	err := LogClose(ns.WriteCloser)
	ns.closed = true

	return err
}

// Closed will return `true` if NamedWriter.Close has been called at least once
func (ns *NamedWriter) Closed() bool {
	return ns.closed
}

// Unwrap returns the embedded io.WriteCloser
func (ns *NamedWriter) Unwrap() io.WriteCloser {
	return ns.WriteCloser
}
