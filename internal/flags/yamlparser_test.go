package flags

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type codecOptions struct {
	Altchars string `yaml:"altchars" long:"altchars"`
	Validate bool   `yaml:"validate" long:"validate"`
	Newline  bool   `yaml:"newline"  long:"newline"`
	Output   string `yaml:"output"   long:"output"`
}

func newParser(t *testing.T) (*YamlParser, *codecOptions, *codecOptions) {
	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)

	encode, decode := &codecOptions{}, &codecOptions{}
	_, err := parser.AddCommand("encode", "Encode", "Encode options", encode)
	require.NoErrorf(t, err, "Could not add encode command")
	_, err = parser.AddCommand("decode", "Decode", "Decode options", decode)
	require.NoErrorf(t, err, "Could not add decode command")

	return NewYamlParser(parser), encode, decode
}

func Test_EmptyParse(t *testing.T) {
	file := "testdata/empty.yml"

	yamlParser, encode, _ := newParser(t)
	err := yamlParser.ParseFile(file)

	require.NoErrorf(t, err, "Parsing not successful: %v", file)
	require.Equal(t, codecOptions{}, *encode)
}

func Test_CommandParse(t *testing.T) {
	file := "testdata/encode.yml"

	yamlParser, encode, decode := newParser(t)
	err := yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, "-_", encode.Altchars, "Invalid reading of string value")
	require.Equal(t, true, encode.Newline, "Invalid reading of boolean value")
	require.Equal(t, "encoded.txt", encode.Output)
	require.Equal(t, codecOptions{}, *decode, "Other commands must stay untouched")
}

func Test_MultipleSegments(t *testing.T) {
	file := "testdata/multiple.yml"

	yamlParser, encode, decode := newParser(t)
	err := yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, "~.", encode.Altchars)
	require.Equal(t, "~.", decode.Altchars)
	require.True(t, decode.Validate)
}

func Test_InvalidNoCommand(t *testing.T) {
	file := "testdata/invalid_no_command.yml"

	yamlParser, _, _ := newParser(t)
	err := yamlParser.ParseFile(file)
	require.Errorf(t, err, "Parsing not successful, expected error but did not get one: %v", file)

	var flagsError *flags.Error
	require.True(t, errors.As(err, &flagsError))
	require.Equal(t, flags.ErrUnknownGroup, flagsError.Type)
}

func Test_InvalidSyntax(t *testing.T) {
	yamlParser, _, _ := newParser(t)
	require.Error(t, yamlParser.ParseFile("testdata/invalid_syntax.yml"))
}

func Test_MissingFile(t *testing.T) {
	yamlParser, _, _ := newParser(t)
	require.Error(t, yamlParser.ParseFile("testdata/does_not_exist.yml"))
}
