package encode

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
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
	in := filepath.Join(dir, "in.bin")
	require.NoError(t, ioutil.WriteFile(in, []byte("\xfb\xff"), 0600))

	tests := []struct {
		name     string
		cmd      Command
		expected string
	}{
		{"standard", Command{}, "+/8="},
		{"altchars", Command{Altchars: "-_"}, "-_8="},
		{"newline", Command{Altchars: "-_", Newline: true}, "-_8=\n"},
		{"mime", Command{Mime: true}, "+/8=\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cmd := test.cmd
			cmd.Output = filepath.Join(dir, test.name+".b64")
			require.NoError(t, cmd.Execute([]string{in}))

			content, err := ioutil.ReadFile(cmd.Output)
			require.NoError(t, err)
			require.Equal(t, test.expected, string(content))
		})
	}
}

func Test_Command_MimeLines(t *testing.T) {
	dir := tempDir(t)
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, ioutil.WriteFile(in, []byte(strings.Repeat("hello world!", 20)), 0600))

	cmd := Command{Mime: true, Output: filepath.Join(dir, "out.b64")}
	require.NoError(t, cmd.Execute([]string{in}))

	content, err := ioutil.ReadFile(cmd.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	require.Len(t, lines, 5)
	require.Len(t, lines[0], 76)
}

func Test_Command_InvalidAltchars(t *testing.T) {
	cmd := Command{Altchars: "AB", Output: filepath.Join(tempDir(t), "out.b64")}
	err := cmd.Execute(nil)
	require.True(t, errors.Is(err, enc.ErrInvalidAlphabet), "unexpected error: %v", err)

	cmd = Command{Altchars: "-", Output: cmd.Output}
	err = cmd.Execute(nil)
	require.True(t, errors.Is(err, enc.ErrInvalidAltcharsLength), "unexpected error: %v", err)

	_, err = (&Command{Mime: true, Altchars: "-_"}).Transformer()
	require.Error(t, err)
}
