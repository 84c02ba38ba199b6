// Package codec is the caller-facing side of the Base64 codec. It accepts any streams.ByteSource
// for data and altchars, picks the alphabet and runs the transforms from the enc package.
package codec

import (
	"io"

	"github.com/bokysan/altbase64/internal/streams"
	"github.com/bokysan/altbase64/internal/util/enc"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxLineLength is the number of symbols per line written by EncodeBytes.
	MaxLineLength = 76

	maxBinSize = MaxLineLength / 4 * 3
	maxInt     = int(^uint(0) >> 1)
)

// ErrNilSource is returned when the data argument is missing altogether.
var ErrNilSource = errors.New("argument should be a bytes-like object or string, not nil")

// Alphabet returns the alphabet for the optional altchars. A nil altchars selects the standard
// alphabet.
func Alphabet(altchars streams.ByteSource) (*enc.Alphabet, error) {
	if altchars == nil {
		return enc.Standard(), nil
	}

	alt, err := enc.NewAltchars(altchars.Bytes())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	alphabet, err := enc.BuildAlphabet(&alt)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return alphabet, nil
}

// B64Encode encodes data. When altchars is given, its two bytes replace '+' and '/' in the output.
// The output carries no line breaks and no terminator.
func B64Encode(data streams.ByteSource, altchars streams.ByteSource) ([]byte, error) {
	if data == nil {
		return nil, errors.WithStack(ErrNilSource)
	}

	alphabet, err := Alphabet(altchars)
	if err != nil {
		return nil, err
	}

	src := data.Bytes()
	size, err := enc.EncodedLen(len(src))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	buf := make([]byte, size)
	alphabet.EncodeTo(buf, src)

	log.Tracef("Encoded %d bytes into %d symbols using %q", len(src), size, alphabet.Altchars().String())
	return buf, nil
}

// B64Decode decodes data under the (possibly substituted) alphabet. With validate set, any byte
// outside the alphabet is an error; otherwise such bytes are discarded before decoding.
func B64Decode(data streams.ByteSource, altchars streams.ByteSource, validate bool) ([]byte, error) {
	if data == nil {
		return nil, errors.WithStack(ErrNilSource)
	}

	alphabet, err := Alphabet(altchars)
	if err != nil {
		return nil, err
	}

	src := data.Bytes()
	res, err := alphabet.Decode(src, validate)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log.Tracef("Decoded %d symbols into %d bytes (validate=%v)", len(src), len(res), validate)
	return res, nil
}

// EncodeBytes encodes data with the standard alphabet and splits the output into lines of at most
// MaxLineLength symbols, each terminated by a newline. Empty input gives empty output.
func EncodeBytes(data streams.ByteSource) ([]byte, error) {
	if data == nil {
		return nil, errors.WithStack(ErrNilSource)
	}

	src := data.Bytes()
	size, err := enc.EncodedLen(len(src))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	lines := (len(src) + maxBinSize - 1) / maxBinSize
	if size > maxInt-lines {
		return nil, errors.WithStack(&enc.SizeError{Length: len(src)})
	}

	alphabet := enc.Standard()
	out := make([]byte, 0, size+lines)
	line := make([]byte, MaxLineLength)
	for i := 0; i < len(src); i += maxBinSize {
		end := i + maxBinSize
		if end > len(src) {
			end = len(src)
		}
		n := alphabet.EncodeTo(line, src[i:end])
		out = append(out, line[:n]...)
		out = append(out, '\n')
	}

	return out, nil
}

// DecodeBytes reverses EncodeBytes: standard alphabet, line breaks and other noise are ignored.
func DecodeBytes(data streams.ByteSource) ([]byte, error) {
	return B64Decode(data, nil, false)
}

// Encode reads all of r and writes its EncodeBytes representation to w.
func Encode(r io.Reader, w io.Writer) error {
	src, err := streams.ReadAll(r)
	if err != nil {
		return err
	}

	res, err := EncodeBytes(src)
	if err != nil {
		return err
	}
	return write(w, res)
}

// Decode reads all of r and writes its DecodeBytes representation to w.
func Decode(r io.Reader, w io.Writer) error {
	src, err := streams.ReadAll(r)
	if err != nil {
		return err
	}

	res, err := DecodeBytes(src)
	if err != nil {
		return err
	}
	return write(w, res)
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.Wrapf(err, "Could not write %d bytes", len(data))
	}
	return nil
}
