package enc

import "fmt"

// Altchars is the pair of symbols which take the place of '+' (index 62) and '/' (index 63) in the
// Base64 alphabet.
type Altchars struct {
	Plus  byte
	Slash byte
}

// DefaultAltchars are the symbols of the standard RFC 4648 alphabet.
var DefaultAltchars = Altchars{Plus: '+', Slash: '/'}

// NewAltchars creates the pair from caller supplied bytes. The input must be exactly two bytes long.
func NewAltchars(b []byte) (Altchars, error) {
	if len(b) != 2 {
		return Altchars{}, &ConfigError{
			Kind:    ErrInvalidAltcharsLength,
			Message: fmt.Sprintf("got %d bytes", len(b)),
		}
	}
	return Altchars{Plus: b[0], Slash: b[1]}, nil
}

// IsDefault returns true if these are the standard '+' and '/' symbols.
func (a Altchars) IsDefault() bool {
	return a == DefaultAltchars
}

func (a Altchars) String() string {
	return string([]byte{a.Plus, a.Slash})
}
