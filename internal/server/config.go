package server

import (
	"github.com/bokysan/altbase64/internal/util/addr"
	"github.com/bokysan/altbase64/internal/util/cert"
)

const (
	// DefaultListen is the address the service binds to when none is configured
	DefaultListen = "tcp://127.0.0.1:9988"

	// DefaultMaxBodySize limits request bodies and websocket messages to 16 MiB
	DefaultMaxBodySize = 16 << 20
)

// Config holds the options of the codec service.
type Config struct {
	Listen            addr.ProtoAddress `yaml:"listen"            short:"L" long:"listen"        env:"LISTEN"        description:"Listen address, e.g. 'tcp://127.0.0.1:9988' or 'unix:///run/altbase64.sock'" default:"tcp://127.0.0.1:9988"`
	MaxBodySize       int64             `yaml:"maxBodySize"       short:"b" long:"max-body-size" env:"MAX_BODY_SIZE" description:"Largest accepted request body or websocket message, in bytes" default:"16777216"`
	EnableCompression bool              `yaml:"enableCompression"           long:"compression"   env:"COMPRESSION"   description:"Negotiate per-message compression on websockets"`

	cert.ServerConfig `group:"TLS options" yaml:",inline"`
}

// NewConfig returns the configuration with the defaults filled in, for callers which do not go
// through the command line parser.
func NewConfig() Config {
	listen, _ := addr.ParseAddress(DefaultListen)
	return Config{
		Listen:      listen,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Redacted returns a copy of the configuration which is safe to log.
func (c Config) Redacted() Config {
	if c.PrivateKey != "" {
		c.PrivateKey = "<redacted>"
	}
	if c.PrivateKeyPassword != nil {
		redacted := "<redacted>"
		c.PrivateKeyPassword = &redacted
	}
	return c
}
