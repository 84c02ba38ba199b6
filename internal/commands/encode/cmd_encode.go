package encode

import (
	"github.com/bokysan/altbase64/internal/codec"
	"github.com/bokysan/altbase64/internal/commands"
	"github.com/bokysan/altbase64/internal/logging"
	"github.com/bokysan/altbase64/internal/streams"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command encodes files (or standard input) into Base64.
type Command struct {
	Altchars string `yaml:"altchars" short:"a" long:"altchars" env:"ALTCHARS" description:"Two characters which replace '+' and '/' in the alphabet, e.g. '-_'"`
	Mime     bool   `yaml:"mime"     short:"m" long:"mime"                    description:"Standard alphabet, output split into lines of 76 characters, each ending with a newline"`
	Newline  bool   `yaml:"newline"  short:"n" long:"newline"                 description:"Terminate the output of every input with a newline"`
	Output   string `yaml:"output"   short:"o" long:"output"   env:"OUTPUT"   description:"Output file, '-' for standard output" default:"-"`
}

func (c *Command) String() string {
	return "Encode into Base64"
}

// Transformer returns the transform selected by the options.
func (c *Command) Transformer() (commands.Transformer, error) {
	if c.Mime {
		if c.Altchars != "" {
			return nil, errors.Errorf("--mime always uses the standard alphabet and cannot be combined with --altchars")
		}
		return codec.EncodeBytes, nil
	}

	altchars := commands.Altchars(c.Altchars)
	if _, err := codec.Alphabet(altchars); err != nil {
		return nil, err
	}
	return func(src streams.ByteSource) ([]byte, error) {
		return codec.B64Encode(src, altchars)
	}, nil
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	transform, err := c.Transformer()
	if err != nil {
		return err
	}

	out, err := streams.OpenOutput(c.Output)
	if err != nil {
		return err
	}
	defer streams.LogClose(out)

	var terminator []byte
	if c.Newline && !c.Mime {
		terminator = []byte{'\n'}
	}

	log.Debugf("Encoding %v into %v", args, out)
	if err := commands.TransformFiles(args, out, transform, terminator); err != nil {
		return err
	}
	return out.Close()
}
