package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bokysan/altbase64/internal/codec"
	"github.com/bokysan/altbase64/internal/streams"
	"github.com/bokysan/altbase64/internal/util/cert"
	"github.com/bokysan/altbase64/internal/util/enc"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrRequestTooLarge is returned when the body exceeds the configured maximum size.
var ErrRequestTooLarge = errors.New("request body too large")

// RequestError is a malformed request which never reached the codec.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// operation runs one codec transform. Operations which have no altchars or validate parameter
// ignore them.
type operation struct {
	altchars    bool
	validate    bool
	contentType string
	run         func(data, altchars streams.ByteSource, validate bool) ([]byte, error)
}

var operations = map[string]operation{
	"encode": {
		altchars:    true,
		contentType: "text/plain; charset=us-ascii",
		run: func(data, altchars streams.ByteSource, _ bool) ([]byte, error) {
			return codec.B64Encode(data, altchars)
		},
	},
	"decode": {
		altchars:    true,
		validate:    true,
		contentType: "application/octet-stream",
		run:         codec.B64Decode,
	},
	"encodebytes": {
		contentType: "text/plain; charset=us-ascii",
		run: func(data, _ streams.ByteSource, _ bool) ([]byte, error) {
			return codec.EncodeBytes(data)
		},
	},
	"decodebytes": {
		contentType: "application/octet-stream",
		run: func(data, _ streams.ByteSource, _ bool) ([]byte, error) {
			return codec.DecodeBytes(data)
		},
	},
}

// request is an operation together with its query parameters
type request struct {
	name     string
	op       operation
	altchars streams.ByteSource
	validate bool
}

func (r *request) String() string {
	return fmt.Sprintf("%s(altchars=%v, validate=%v)", r.name, r.altchars, r.validate)
}

func (r *request) run(data streams.ByteSource) ([]byte, error) {
	return r.op.run(data, r.altchars, r.validate)
}

// parseRequest resolves the operation from the URL and reads its query parameters.
func parseRequest(r *http.Request) (*request, error) {
	name := chi.URLParam(r, "op")
	op, ok := operations[name]
	if !ok {
		return nil, nil
	}

	req := &request{name: name, op: op}
	query := r.URL.Query()

	if values, ok := query["altchars"]; ok {
		if !op.altchars {
			return nil, &RequestError{Message: fmt.Sprintf("%s does not accept altchars", name)}
		}
		req.altchars = streams.Text(values[0])
		if _, err := codec.Alphabet(req.altchars); err != nil {
			return nil, err
		}
	}

	if value := query.Get("validate"); value != "" {
		if !op.validate {
			return nil, &RequestError{Message: fmt.Sprintf("%s does not accept validate", name)}
		}
		validate, err := strconv.ParseBool(value)
		if err != nil {
			return nil, &RequestError{Message: fmt.Sprintf("invalid validate value %q", value)}
		}
		req.validate = validate
	}

	return req, nil
}

// StatusCode maps an error onto the HTTP status reported to the client.
func StatusCode(err error) int {
	var requestError *RequestError
	var configError *enc.ConfigError
	var decodeError *enc.DecodeError
	var sizeError *enc.SizeError

	switch {
	case errors.As(err, &requestError), errors.As(err, &configError):
		return http.StatusBadRequest
	case errors.As(err, &decodeError):
		return http.StatusUnprocessableEntity
	case errors.As(err, &sizeError), errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("Request failed: %+v", err)
	} else {
		log.WithError(err).Debugf("Request rejected with %d", status)
	}
	http.Error(w, err.Error(), status)
}

// readBody reads at most limit bytes of the request body. A limit of zero or less means no limit.
func readBody(body io.Reader, limit int64) (streams.ByteSource, error) {
	if limit > 0 {
		body = io.LimitReader(body, limit+1)
	}

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(body); err != nil {
		return nil, &RequestError{Message: fmt.Sprintf("could not read request body: %v", err)}
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, errors.Wrapf(ErrRequestTooLarge, "limit is %d bytes", limit)
	}
	return streams.Bytes(buf.Bytes()), nil
}

// Transform handles POST /{op}: the request body is the input, the response body is the output.
func (hs *HttpServer) Transform(w http.ResponseWriter, r *http.Request) {
	cert.LogPeerCertificates(r.TLS)

	req, err := parseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	} else if req == nil {
		http.NotFound(w, r)
		return
	}

	data, err := readBody(r.Body, hs.MaxBodySize)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := req.run(data)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Debugf("%v: %d bytes in, %d bytes out", req, len(data.Bytes()), len(res))

	w.Header().Set("Content-Type", req.op.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res); err != nil {
		log.WithError(err).Debugf("Could not write the response: %v", err)
	}
}
