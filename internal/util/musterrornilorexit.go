package util

import (
	"os"

	"github.com/bokysan/altbase64/internal/util/enc"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// ErrUsage is returned for altchars which do not form a valid alphabet.
	ErrUsage = 64
	// ErrData is returned for malformed Base64 input.
	ErrData = 65
	// ErrSoftware is returned when the output buffer cannot be sized.
	ErrSoftware = 70
	// ErrGeneric is returned for everything else.
	ErrGeneric = 99
)

// ExitCode maps the error to the process exit code. Error code is unwrapped from `flags.Error` object.
// Codec errors map to the sysexits-style codes above. If it's a different kind of error, a generic
// error code - 99 - is returned.
func ExitCode(err error) int {
	var flagsError *flags.Error
	var configError *enc.ConfigError
	var decodeError *enc.DecodeError
	var sizeError *enc.SizeError

	switch {
	case err == nil:
		return 0
	case errors.As(err, &flagsError):
		if flagsError.Type == flags.ErrHelp {
			return 0
		}
		return int(flagsError.Type)
	case errors.As(err, &configError):
		return ErrUsage
	case errors.As(err, &decodeError):
		return ErrData
	case errors.As(err, &sizeError):
		return ErrSoftware
	default:
		return ErrGeneric
	}
}

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with the code from
// ExitCode.
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	code := ExitCode(err)
	if code == 0 {
		os.Exit(0)
	}

	log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
	log.Exit(code)
}
