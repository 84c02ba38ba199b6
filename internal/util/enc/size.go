package enc

const maxInt = int(^uint(0) >> 1)

// EncodedLen returns the exact length of the padded encoding of n input bytes: ceil(n/3)*4. It
// returns a *SizeError instead of overflowing for pathologically large (or negative) n.
func EncodedLen(n int) (int, error) {
	if n < 0 {
		return 0, &SizeError{Length: n}
	}

	groups := n / 3
	if n%3 != 0 {
		groups++
	}
	if groups > maxInt/4 {
		return 0, &SizeError{Length: n}
	}
	return groups * 4, nil
}

// DecodedLen returns the maximum number of bytes n symbols of padded input can decode to.
func DecodedLen(n int) int {
	return n / 4 * 3
}
