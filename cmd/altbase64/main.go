package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bokysan/altbase64/internal/args"
	"github.com/bokysan/altbase64/internal/commands/decode"
	"github.com/bokysan/altbase64/internal/commands/encode"
	"github.com/bokysan/altbase64/internal/commands/serve"
	"github.com/bokysan/altbase64/internal/commands/version"
	abFlags "github.com/bokysan/altbase64/internal/flags"
	"github.com/bokysan/altbase64/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// AltBase64 is the main executable
type AltBase64 struct {
	parser *flags.Parser
	encode *encode.Command
	decode *decode.Command
	serve  *serve.Command
}

// NewAltBase64 will create a new instance of AltBase64 and initialize the parser
func NewAltBase64() *AltBase64 {
	executableFilename := os.Args[0]
	executablePath := path.Base(executableFilename)

	ab := &AltBase64{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
		encode: &encode.Command{},
		decode: &decode.Command{},
		serve:  serve.NewCommand(),
	}

	ab.setupGeneral()
	ab.setupVersion()
	ab.setupEncode()
	ab.setupDecode()
	ab.setupServe()

	return ab
}

// setupGeneral will configure general options
func (ab *AltBase64) setupGeneral() {
	if _, err := ab.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

// setupVersion adds the `version` command
func (ab *AltBase64) setupVersion() {
	_, err := ab.parser.AddCommand(
		"version",
		"Print the version",
		"Print the application version and exit",
		&version.Command{},
	)
	util.MustErrorNilOrExit(err)
}

// setupEncode adds the `encode` command
func (ab *AltBase64) setupEncode() {
	_, err := ab.parser.AddCommand(
		"encode",
		"Encode into Base64",
		"Encode the given files, or standard input if there are none, into Base64",
		ab.encode,
	)
	util.MustErrorNilOrExit(err)
}

// setupDecode adds the `decode` command
func (ab *AltBase64) setupDecode() {
	_, err := ab.parser.AddCommand(
		"decode",
		"Decode from Base64",
		"Decode the given Base64 files, or standard input if there are none",
		ab.decode,
	)
	util.MustErrorNilOrExit(err)
}

// setupServe adds the `serve` command
func (ab *AltBase64) setupServe() {
	_, err := ab.parser.AddCommand(
		"serve",
		"Run the codec service",
		"Serve encode and decode over HTTP POST requests and websockets",
		ab.serve,
	)
	util.MustErrorNilOrExit(err)
}

// configFile is the callback of the -c option: it fills the commands from a YAML file
func (ab *AltBase64) configFile(file string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return &flags.Error{
			Type:    ErrConfigFileDoesNotExist,
			Message: fmt.Sprintf("Configuration file %s does not exist.", file),
		}
	}

	yamlParser := abFlags.NewYamlParser(ab.parser)

	args.General.ConfigurationFilePath = file
	return yamlParser.ParseFile(file)
}

// main starts altbase64 and reads the configuration file
func main() {
	altBase64 := NewAltBase64()
	args.General.ConfigurationFile = altBase64.configFile

	_, err := altBase64.parser.Parse()
	util.MustErrorNilOrExit(err)
}
