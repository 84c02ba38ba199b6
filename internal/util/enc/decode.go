package enc

import "bytes"

// Decode reverses Encode.
//
// With validate set, every byte of src must be one of the alphabet's 64 symbols or the padding
// character, otherwise decoding stops with ErrInvalidByte. Without it, src is first run through
// Filter and whatever is left is decoded with the same rules. Either way the remaining input must
// be a canonical padded encoding: a multiple of 4 bytes, at most two trailing '=' and no stray bits
// in the last symbol.
func (a *Alphabet) Decode(src []byte, validate bool) ([]byte, error) {
	if !validate {
		src = a.Filter(src)
	}
	return a.decodeStrict(src)
}

// Filter returns a copy of src with every byte that is neither an alphabet symbol nor the padding
// character dropped. The order of the kept bytes is preserved.
func (a *Alphabet) Filter(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for _, c := range src {
		if a.member[c] {
			out = append(out, c)
		}
	}
	return out
}

func (a *Alphabet) decodeStrict(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	for i, c := range src {
		if !a.member[c] {
			return nil, &DecodeError{Kind: ErrInvalidByte, Offset: i, Value: c}
		}
	}

	if len(src)%4 != 0 {
		return nil, &DecodeError{Kind: ErrInvalidLength, Offset: len(src)}
	}

	pads := 0
	for pads < len(src) && src[len(src)-1-pads] == StdPadding {
		pads++
	}
	body := len(src) - pads
	if pads > 2 {
		return nil, &DecodeError{Kind: ErrInvalidPadding, Offset: body, Value: StdPadding}
	}
	if i := bytes.IndexByte(src[:body], StdPadding); i >= 0 {
		return nil, &DecodeError{Kind: ErrInvalidPadding, Offset: i, Value: StdPadding}
	}

	dst := make([]byte, DecodedLen(len(src))-pads)

	full := len(src)
	if pads > 0 {
		full -= 4
	}

	di := 0
	for si := 0; si < full; si += 4 {
		val := uint(a.decode[src[si+0]])<<18 |
			uint(a.decode[src[si+1]])<<12 |
			uint(a.decode[src[si+2]])<<6 |
			uint(a.decode[src[si+3]])

		dst[di+0] = byte(val >> 16)
		dst[di+1] = byte(val >> 8)
		dst[di+2] = byte(val)
		di += 3
	}

	if pads == 0 {
		return dst, nil
	}

	tail := src[full:body]
	last := tail[len(tail)-1]
	if (pads == 2 && a.decode[last]&0x0F != 0) || (pads == 1 && a.decode[last]&0x03 != 0) {
		return nil, &DecodeError{Kind: ErrInvalidLastSymbol, Offset: body - 1, Value: last}
	}

	val := uint(a.decode[tail[0]])<<18 | uint(a.decode[tail[1]])<<12
	if len(tail) == 3 {
		val |= uint(a.decode[tail[2]]) << 6
	}

	dst[di] = byte(val >> 16)
	if pads == 1 {
		dst[di+1] = byte(val >> 8)
	}

	return dst, nil
}
