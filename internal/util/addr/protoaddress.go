package addr

import (
	"strings"

	"github.com/pkg/errors"
)

// ProtoAddress is a combination of network type and address.
type ProtoAddress struct {
	Network string `yaml:"network"`
	Address string `yaml:"address"`
}

// String will combine the network with address in format <network>://<address>
func (p ProtoAddress) String() string {
	return p.Network + "://" + p.Address
}

// IsTCP returns true for the networks which resolve to a host and a port.
func (p ProtoAddress) IsTCP() bool {
	return p.Network == "tcp" || p.Network == "tcp4" || p.Network == "tcp6"
}

// ParseAddress does the reverse of ProtoAddress.String -- it will take a string and convert it
// to an address. A bare "host:port" is taken as a tcp address.
func ParseAddress(a string) (ProtoAddress, error) {
	a = strings.TrimSpace(a)
	if a == "" {
		return ProtoAddress{}, errors.Errorf("Empty address")
	}

	parts := strings.SplitN(a, "://", 2)
	if len(parts) != 2 {
		return ProtoAddress{Network: "tcp", Address: a}, nil
	}

	switch parts[0] {
	case "tcp", "tcp4", "tcp6", "unix":
	default:
		return ProtoAddress{}, errors.Errorf("Unsupported network %q in address %v", parts[0], a)
	}
	if parts[1] == "" {
		return ProtoAddress{}, errors.Errorf("Invalid address format: %v", a)
	}

	return ProtoAddress{
		Network: parts[0], Address: parts[1],
	}, nil
}

// UnmarshalFlag reads the address from the command line
func (p *ProtoAddress) UnmarshalFlag(value string) error {
	res, err := ParseAddress(value)
	if err != nil {
		return err
	}
	*p = res
	return nil
}

// MarshalFlag is used by go-flags to display the default value
func (p ProtoAddress) MarshalFlag() (string, error) {
	return p.String(), nil
}

// UnmarshalYAML accepts both the string form and a map with network and address.
func (p *ProtoAddress) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		return p.UnmarshalFlag(s)
	}

	type plain ProtoAddress
	var res plain
	if err := unmarshal(&res); err != nil {
		return errors.WithStack(err)
	}
	*p = ProtoAddress(res)
	if p.Network == "" {
		p.Network = "tcp"
	}
	return nil
}

// MarshalYAML writes the address in its string form
func (p ProtoAddress) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}
