package decode

import (
	"github.com/bokysan/altbase64/internal/codec"
	"github.com/bokysan/altbase64/internal/commands"
	"github.com/bokysan/altbase64/internal/logging"
	"github.com/bokysan/altbase64/internal/streams"
	log "github.com/sirupsen/logrus"
)

// Command decodes Base64 files (or standard input).
type Command struct {
	Altchars string `yaml:"altchars" short:"a" long:"altchars" env:"ALTCHARS" description:"Two characters which replace '+' and '/' in the alphabet, e.g. '-_'"`
	Validate bool   `yaml:"validate" short:"s" long:"validate" env:"VALIDATE" description:"Fail on any character outside of the alphabet instead of skipping it"`
	Output   string `yaml:"output"   short:"o" long:"output"   env:"OUTPUT"   description:"Output file, '-' for standard output" default:"-"`
}

func (c *Command) String() string {
	return "Decode from Base64"
}

// Transformer returns the transform selected by the options.
func (c *Command) Transformer() (commands.Transformer, error) {
	altchars := commands.Altchars(c.Altchars)
	if _, err := codec.Alphabet(altchars); err != nil {
		return nil, err
	}

	validate := c.Validate
	return func(src streams.ByteSource) ([]byte, error) {
		return codec.B64Decode(src, altchars, validate)
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

	log.Debugf("Decoding %v into %v (validate=%v)", args, out, c.Validate)
	if err := commands.TransformFiles(args, out, transform, nil); err != nil {
		return err
	}
	return out.Close()
}
