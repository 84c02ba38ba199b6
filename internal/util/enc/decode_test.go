package enc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var testAltchars = []string{"+/", "-_", "~.", "!@", "/+"}

// injectNoise intersperses bytes that are never part of a stream at varying positions.
func injectNoise(in []byte) []byte {
	noise := []byte(" \n\t\r\x00\xff\x80")
	out := make([]byte, 0, len(in)*2+1)
	out = append(out, noise[len(in)%len(noise)])
	for i, c := range in {
		out = append(out, c)
		if i%3 == 1 {
			out = append(out, noise[i%len(noise)])
		}
	}
	return append(out, '\n')
}

func requireDecodeError(t *testing.T, err error, kind error, offset int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)

	var decodeError *DecodeError
	require.True(t, errors.As(err, &decodeError))
	require.Equal(t, offset, decodeError.Offset, "wrong offset in %v", err)
}

func Test_Decode_Vectors(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"Zg==":     "f",
		"Zm8=":     "fo",
		"Zm9v":     "foo",
		"Zm9vYg==": "foob",
		"Zm9vYmE=": "fooba",
		"Zm9vYmFy": "foobar",
	}

	for in, expected := range tests {
		for _, validate := range []bool{true, false} {
			out, err := Standard().Decode([]byte(in), validate)
			require.NoError(t, err)
			require.Equal(t, expected, string(out), "decoding %q (validate=%v)", in, validate)
		}
	}
}

func Test_Decode_AltcharsInsensitiveInput(t *testing.T) {
	out, err := mustBuild(t, "-_").Decode([]byte("Zm9v"), true)
	require.NoError(t, err)
	require.Equal(t, "foo", string(out))
}

func Test_Decode_Altchars(t *testing.T) {
	out, err := mustBuild(t, "-_").Decode([]byte("-_8="), true)
	require.NoError(t, err)
	require.Equal(t, []byte("\xfb\xff"), out)

	// Standard symbols are noise under a substituted alphabet.
	_, err = mustBuild(t, "-_").Decode([]byte("+/8="), true)
	requireDecodeError(t, err, ErrInvalidByte, 0)

	out, err = mustBuild(t, "-_").Decode([]byte("+/8="), false)
	requireDecodeError(t, err, ErrInvalidLength, 2)
	require.Nil(t, out)
}

func Test_Decode_RoundTrip(t *testing.T) {
	data := allBytes(2)
	for _, altchars := range testAltchars {
		a := mustBuild(t, altchars)
		for l := 0; l <= len(data); l++ {
			encoded := a.Encode(data[:l])
			decoded, err := a.Decode(encoded, true)
			require.NoError(t, err)
			require.Equal(t, data[:l], decoded, "round trip of %d bytes with %q", l, altchars)
		}
	}

	decoded, err := Standard().Decode(Standard().Encode(encoderTest), true)
	require.NoError(t, err)
	require.Equal(t, encoderTest, decoded)
}

func Test_Decode_PermissiveFiltersNoise(t *testing.T) {
	data := allBytes(1)
	for _, altchars := range testAltchars {
		a := mustBuild(t, altchars)
		for l := 1; l <= len(data); l += 5 {
			noisy := injectNoise(a.Encode(data[:l]))

			decoded, err := a.Decode(noisy, false)
			require.NoError(t, err)
			require.Equal(t, data[:l], decoded)
		}
	}
}

func Test_Decode_StrictRejectsNoise(t *testing.T) {
	data := allBytes(1)
	for _, altchars := range testAltchars {
		a := mustBuild(t, altchars)
		for l := 1; l <= len(data); l += 5 {
			noisy := injectNoise(a.Encode(data[:l]))

			decoded, err := a.Decode(noisy, true)
			requireDecodeError(t, err, ErrInvalidByte, 0)
			require.Nil(t, decoded)
		}
	}
}

func Test_Decode_InvalidByte(t *testing.T) {
	_, err := Standard().Decode([]byte("Zm9v Zm9v"), true)
	requireDecodeError(t, err, ErrInvalidByte, 4)

	var decodeError *DecodeError
	require.True(t, errors.As(err, &decodeError))
	require.Equal(t, byte(' '), decodeError.Value)
	require.Contains(t, err.Error(), "offset 4")
}

func Test_Decode_InvalidLength(t *testing.T) {
	for _, in := range []string{"Z", "Zm", "Zm9", "Zm9vY", "Zg="} {
		for _, validate := range []bool{true, false} {
			_, err := Standard().Decode([]byte(in), validate)
			requireDecodeError(t, err, ErrInvalidLength, len(in))
		}
	}

	// The structure is checked after filtering.
	_, err := Standard().Decode([]byte("Zm9\nv Zg"), false)
	requireDecodeError(t, err, ErrInvalidLength, 6)
}

func Test_Decode_InvalidPadding(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"====", 0},
		{"Z===", 1},
		{"Zg=a", 2},
		{"Zg==Zm9v", 2},
		{"=m9v", 0},
		{"Zm9vZ===", 5},
	}

	for _, test := range tests {
		for _, validate := range []bool{true, false} {
			out, err := Standard().Decode([]byte(test.in), validate)
			requireDecodeError(t, err, ErrInvalidPadding, test.offset)
			require.Nil(t, out)
		}
	}
}

func Test_Decode_InvalidLastSymbol(t *testing.T) {
	_, err := Standard().Decode([]byte("Zh=="), true)
	requireDecodeError(t, err, ErrInvalidLastSymbol, 1)

	_, err = Standard().Decode([]byte("Zm9="), true)
	requireDecodeError(t, err, ErrInvalidLastSymbol, 2)

	_, err = Standard().Decode([]byte("Zm8="), true)
	require.NoError(t, err)
}

func Test_Filter(t *testing.T) {
	require.Equal(t, []byte("Zm9v"), Standard().Filter([]byte(" Z\nm-9_v\t")))
	require.Equal(t, []byte("Zm-9_v"), mustBuild(t, "-_").Filter([]byte(" Z\nm-9_v+/")))
	require.Equal(t, []byte("Zg=="), Standard().Filter([]byte("Zg\r\n==\r\n")))
	require.Len(t, Standard().Filter(nil), 0)
}
