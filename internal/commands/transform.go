package commands

import (
	"io"

	"github.com/bokysan/altbase64/internal/streams"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Transformer turns the content of one input into its output.
type Transformer func(src streams.ByteSource) ([]byte, error)

// Altchars converts the command line option into a ByteSource. An empty option means no altchars.
func Altchars(option string) streams.ByteSource {
	if option == "" {
		return nil
	}
	return streams.Text(option)
}

// TransformFiles runs the transformer over every named input, in order, and writes the results to w,
// each followed by the terminator. No names means standard input. A failing input does not stop the
// ones after it; all failures are returned together.
func TransformFiles(files []string, w io.Writer, transform Transformer, terminator []byte) error {
	if len(files) == 0 {
		files = []string{streams.StdioName}
	}

	var errs *multierror.Error
	for _, name := range files {
		if err := transformFile(name, w, transform, terminator); err != nil {
			log.WithError(err).Debugf("Failed processing %s", name)
			errs = multierror.Append(errs, errors.Wrapf(err, "%s", name))
		}
	}
	return errs.ErrorOrNil()
}

func transformFile(name string, w io.Writer, transform Transformer, terminator []byte) error {
	in, err := streams.OpenInput(name)
	if err != nil {
		return err
	}
	defer streams.LogClose(in)

	src, err := streams.ReadAll(in)
	if err != nil {
		return err
	}
	if err := in.Close(); err != nil {
		return err
	}

	res, err := transform(src)
	if err != nil {
		return err
	}
	log.Debugf("%v: %d bytes in, %d bytes out", in, len(src.Bytes()), len(res))

	if _, err := w.Write(res); err != nil {
		return errors.Wrapf(err, "Could not write result of %v", in)
	}
	if len(terminator) > 0 {
		if _, err := w.Write(terminator); err != nil {
			return errors.Wrapf(err, "Could not write result of %v", in)
		}
	}
	return nil
}
