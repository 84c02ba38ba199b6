package decode

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bokysan/altbase64/internal/util/enc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "altbase64")
	require.NoErrorf(t, err, "Could not create temp dir: %v", err)
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return dir
}

func Test_Command_Execute(t *testing.T) {
	dir := tempDir(t)
	std := filepath.Join(dir, "std.b64")
	alt := filepath.Join(dir, "alt.b64")
	require.NoError(t, ioutil.WriteFile(std, []byte("+/8=\n"), 0600))
	require.NoError(t, ioutil.WriteFile(alt, []byte("-_8=\n"), 0600))

	cmd := Command{Output: filepath.Join(dir, "std.bin")}
	require.NoError(t, cmd.Execute([]string{std}))
	content, err := ioutil.ReadFile(cmd.Output)
	require.NoError(t, err)
	require.Equal(t, []byte("\xfb\xff"), content)

	cmd = Command{Altchars: "-_", Output: filepath.Join(dir, "alt.bin")}
	require.NoError(t, cmd.Execute([]string{alt}))
	content, err = ioutil.ReadFile(cmd.Output)
	require.NoError(t, err)
	require.Equal(t, []byte("\xfb\xff"), content)
}

func Test_Command_Validate(t *testing.T) {
	dir := tempDir(t)
	in := filepath.Join(dir, "in.b64")
	require.NoError(t, ioutil.WriteFile(in, []byte("Zm9v\n"), 0600))

	cmd := Command{Validate: true, Output: filepath.Join(dir, "out.bin")}
	err := cmd.Execute([]string{in})
	require.True(t, errors.Is(err, enc.ErrInvalidByte), "unexpected error: %v", err)

	var decodeError *enc.DecodeError
	require.True(t, errors.As(err, &decodeError))
	require.Equal(t, 4, decodeError.Offset)
}
