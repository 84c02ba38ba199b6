package enc

import "github.com/pkg/errors"

// EncodeTo writes the padded encoding of src into dst and returns the number of bytes written.
// dst must hold at least EncodedLen(len(src)) bytes.
func (a *Alphabet) EncodeTo(dst, src []byte) int {
	if len(src) == 0 {
		return 0
	}
	if need, err := EncodedLen(len(src)); err != nil || len(dst) < need {
		panic(errors.Errorf("encode buffer too small: have %d bytes for %d input bytes", len(dst), len(src)))
	}

	di, si := 0, 0
	n := (len(src) / 3) * 3
	for si < n {
		val := uint(src[si+0])<<16 | uint(src[si+1])<<8 | uint(src[si+2])

		dst[di+0] = a.symbols[val>>18&0x3F]
		dst[di+1] = a.symbols[val>>12&0x3F]
		dst[di+2] = a.symbols[val>>6&0x3F]
		dst[di+3] = a.symbols[val&0x3F]

		si += 3
		di += 4
	}

	remain := len(src) - si
	if remain == 0 {
		return di
	}

	// Zero-pad the trailing group.
	val := uint(src[si+0]) << 16
	if remain == 2 {
		val |= uint(src[si+1]) << 8
	}

	dst[di+0] = a.symbols[val>>18&0x3F]
	dst[di+1] = a.symbols[val>>12&0x3F]

	switch remain {
	case 2:
		dst[di+2] = a.symbols[val>>6&0x3F]
		dst[di+3] = StdPadding
	case 1:
		dst[di+2] = StdPadding
		dst[di+3] = StdPadding
	}

	return di + 4
}

// Encode returns the padded encoding of src. Empty input gives empty output.
//
// Encode panics if the output cannot be sized; use EncodedLen first when src may be arbitrarily
// large.
func (a *Alphabet) Encode(src []byte) []byte {
	size, err := EncodedLen(len(src))
	if err != nil {
		panic(err)
	}

	dst := make([]byte, size)
	if n := a.EncodeTo(dst, src); n != size {
		panic(errors.Errorf("encoded %d bytes, expected %d", n, size))
	}
	return dst
}
