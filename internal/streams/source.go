package streams

import (
	"bytes"
	"github.com/pkg/errors"
	"io"
)

// Bytes is a ByteSource over a byte slice. The slice is handed out as is, without copying.
type Bytes []byte

func (b Bytes) Bytes() []byte {
	return b
}

// Text is a ByteSource over a string. The string is viewed as its raw (UTF-8) bytes.
type Text string

func (t Text) Bytes() []byte {
	return []byte(t)
}

// ReadAll drains the reader and returns its content as a ByteSource. It is meant for file-like
// inputs of bounded size; the whole content is held in memory.
func ReadAll(r io.Reader) (ByteSource, error) {
	if r == nil {
		return nil, errors.Errorf("Cannot read from a nil reader")
	}

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrapf(err, "Could not read from %v", r)
	}
	return Bytes(buf.Bytes()), nil
}
