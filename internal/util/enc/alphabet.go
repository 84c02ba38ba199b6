package enc

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// StdPadding is the padding character. It is not configurable.
	StdPadding byte = '='

	invalidIndex = 0xFF
)

// Alphabet is the 64 symbol table used to run a transform, together with its inverse lookup and
// the membership table used when filtering permissive input. An Alphabet is immutable once built
// and is safe to share between goroutines.
type Alphabet struct {
	symbols  [64]byte
	decode   [256]byte
	member   [256]bool
	altchars Altchars
	custom   bool
}

var standard = mustAlphabet(DefaultAltchars)

// Standard returns the shared RFC 4648 alphabet.
func Standard() *Alphabet {
	return standard
}

// BuildAlphabet returns the alphabet for the given altchars. A nil pair, or a pair equal to
// DefaultAltchars, yields the shared standard alphabet without constructing anything.
func BuildAlphabet(altchars *Altchars) (*Alphabet, error) {
	if altchars == nil || altchars.IsDefault() {
		return standard, nil
	}

	log.Tracef("Building alphabet with altchars %q", altchars.String())
	a, err := newAlphabet(*altchars)
	if err != nil {
		return nil, err
	}
	a.custom = true
	return a, nil
}

func mustAlphabet(altchars Altchars) *Alphabet {
	a, err := newAlphabet(altchars)
	if err != nil {
		panic(err)
	}
	return a
}

func newAlphabet(altchars Altchars) (*Alphabet, error) {
	a := &Alphabet{
		altchars: altchars,
	}
	copy(a.symbols[:], alphanumerics)
	a.symbols[62] = altchars.Plus
	a.symbols[63] = altchars.Slash

	for i := range a.decode {
		a.decode[i] = invalidIndex
	}

	for i, s := range a.symbols {
		var reason string
		switch {
		case s < 0x20 || s > 0x7E:
			reason = "unprintable byte"
		case s == StdPadding:
			reason = "reserved padding byte"
		case a.decode[s] != invalidIndex:
			reason = "duplicated byte"
		}
		if reason != "" {
			return nil, &ConfigError{
				Kind:    ErrInvalidAlphabet,
				Message: fmt.Sprintf("%s %q (0x%02x) in altchars %q", reason, s, s, altchars.String()),
			}
		}
		a.decode[s] = byte(i)
		a.member[s] = true
	}
	a.member[StdPadding] = true

	return a, nil
}

// Altchars returns the symbols at index 62 and 63.
func (a *Alphabet) Altchars() Altchars {
	return a.altchars
}

// IsStandard returns true for the shared RFC 4648 alphabet.
func (a *Alphabet) IsStandard() bool {
	return !a.custom
}

// Contains reports whether c is part of the stream under this alphabet: one of the 64 symbols or
// the padding character.
func (a *Alphabet) Contains(c byte) bool {
	return a.member[c]
}

func (a *Alphabet) String() string {
	return string(a.symbols[:])
}
